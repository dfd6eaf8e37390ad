package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/addrbook/internal/book"
	"github.com/mesh-intelligence/addrbook/pkg/types"
)

const shellMenu = `
1. Add contact
2. Delete contact
3. Show all contacts
4. Save changes
5. Search contacts
6. Edit contact
7. Exit
`

// errInputClosed ends the shell when stdin reaches EOF.
var errInputClosed = errors.New("input closed")

// maxInputLine caps a single line of shell input.
var maxInputLine = 16 * 1024 * 1024

// inputLine is one line read from the shell's input, or the error that
// stopped reading.
type inputLine struct {
	text string
	err  error
}

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive menu",
		Long: `Start an interactive menu for adding, deleting, listing, saving, searching
and editing contacts. The address book is saved when the shell exits, including
on end of input, Ctrl-C or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := a.openSession()
			if err != nil {
				return err
			}
			if s.info.Fresh {
				fmt.Fprintln(cmd.OutOrStdout(), "Snapshot not found. Created a new address book.")
			}

			defer func() {
				saveErr := s.save()
				if saveErr == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "Data saved successfully!")
				}
				err = errors.Join(err, saveErr)
			}()

			return runShell(ctx, s, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// shell is the interactive menu loop over a session's book.
type shell struct {
	ctx   context.Context
	s     *session
	out   io.Writer
	lines <-chan inputLine
}

// runShell drives the menu until the user exits, input ends, or ctx is
// cancelled. It never saves on its own behalf except for the menu's save
// entry; the caller saves on return.
func runShell(ctx context.Context, s *session, in io.Reader, out io.Writer) error {
	done := make(chan struct{})
	defer close(done)

	sh := &shell{ctx: ctx, s: s, out: out, lines: readLines(in, done)}
	err := sh.loop()
	if errors.Is(err, errInputClosed) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(out)
		s.logger.Debug("shell stopped", zap.Error(err))
		return nil
	}
	return err
}

// readLines feeds lines from in until EOF or until done is closed. A read
// failure is sent as the last value before the channel closes.
func readLines(in io.Reader, done <-chan struct{}) <-chan inputLine {
	lines := make(chan inputLine)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, min(64*1024, maxInputLine)), maxInputLine)
		send := func(l inputLine) bool {
			select {
			case lines <- l:
				return true
			case <-done:
				return false
			}
		}
		for scanner.Scan() {
			if !send(inputLine{text: strings.TrimSuffix(scanner.Text(), "\r")}) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			send(inputLine{err: fmt.Errorf("read input: %w", err)})
		}
	}()
	return lines
}

// ask prints prompt and waits for one line of input.
func (sh *shell) ask(prompt string) (string, error) {
	fmt.Fprint(sh.out, prompt)
	select {
	case <-sh.ctx.Done():
		return "", sh.ctx.Err()
	case line, ok := <-sh.lines:
		if !ok {
			return "", errInputClosed
		}
		return line.text, line.err
	}
}

func (sh *shell) loop() error {
	for {
		fmt.Fprint(sh.out, shellMenu)
		choice, err := sh.ask("Choose an option: ")
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = sh.add()
		case "2":
			err = sh.remove()
		case "3":
			err = printContacts(sh.out, false, sh.s.book.List(), "Contacts:", "Address book is empty.")
		case "4":
			sh.save()
		case "5":
			err = sh.search()
		case "6":
			err = sh.edit()
		case "7":
			return nil
		default:
			fmt.Fprintln(sh.out, "Invalid choice, try again.")
		}
		if err != nil {
			return err
		}
	}
}

// askPhones collects phones one at a time until an empty line. An invalid
// entry is reported and asked for again.
func (sh *shell) askPhones(prompt string) ([]string, error) {
	var phones []string
	for {
		phone, err := sh.ask(prompt)
		if err != nil {
			return nil, err
		}
		if phone == "" {
			return phones, nil
		}
		if !types.IsValidPhone(phone) {
			fmt.Fprintln(sh.out, "Invalid phone format. Try again.")
			continue
		}
		phones = append(phones, phone)
	}
}

func (sh *shell) add() error {
	name, err := sh.ask("Name: ")
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Fprintln(sh.out, "Name must not be empty!")
		return nil
	}

	var f book.Fields
	if f.Phones, err = sh.askPhones("Phone ((123) 456-7890 or 1234567890), Enter to finish: "); err != nil {
		return err
	}

	if f.Email, err = sh.ask("Email: "); err != nil {
		return err
	}
	if !types.IsValidEmail(f.Email) {
		fmt.Fprintln(sh.out, "Invalid email format.")
		return nil
	}

	if f.Birthday, err = sh.ask("Birthday (DD.MM.YYYY): "); err != nil {
		return err
	}
	if !types.IsValidBirthday(f.Birthday) {
		fmt.Fprintln(sh.out, "Invalid birthday format.")
		return nil
	}

	if f.Address, err = sh.ask("Address: "); err != nil {
		return err
	}
	if f.Address == "" {
		fmt.Fprintln(sh.out, "Address must not be empty!")
		return nil
	}

	if _, err := sh.s.book.Add(name, f); err != nil {
		fmt.Fprintln(sh.out, "Error:", err)
		return nil
	}
	fmt.Fprintln(sh.out, "Contact added!")
	return nil
}

func (sh *shell) remove() error {
	name, err := sh.ask("Name to delete: ")
	if err != nil {
		return err
	}
	if err := sh.s.book.Delete(name); err != nil {
		fmt.Fprintf(sh.out, "Contact %s not found!\n", name)
		return nil
	}
	fmt.Fprintf(sh.out, "Contact %s deleted!\n", name)
	return nil
}

func (sh *shell) save() {
	if err := sh.s.save(); err != nil {
		fmt.Fprintln(sh.out, "Error:", err)
		return
	}
	fmt.Fprintln(sh.out, "Data saved successfully!")
}

func (sh *shell) search() error {
	term, err := sh.ask("Name, email, address, birthday or phone to search for: ")
	if err != nil {
		return err
	}
	return printContacts(sh.out, false, sh.s.book.Search(term), "Found contacts:", "No contacts found.")
}

func (sh *shell) edit() error {
	name, err := sh.ask("Name of the contact to edit: ")
	if err != nil {
		return err
	}
	if _, err := sh.s.book.Get(name); err != nil {
		fmt.Fprintln(sh.out, "Contact not found!")
		return nil
	}
	fmt.Fprintf(sh.out, "Editing contact %s.\n", name)

	var f book.Fields
	if f.Phones, err = sh.askPhones("New phone (Enter to finish): "); err != nil {
		return err
	}
	if f.Email, err = sh.ask("New email (leave empty to keep): "); err != nil {
		return err
	}
	if f.Birthday, err = sh.ask("New birthday (leave empty to keep): "); err != nil {
		return err
	}
	if f.Address, err = sh.ask("New address (leave empty to keep): "); err != nil {
		return err
	}

	rejected, err := sh.s.book.Edit(name, f)
	sh.s.logRejected(name, rejected)
	if err != nil {
		fmt.Fprintln(sh.out, "Error:", err)
		return nil
	}
	fmt.Fprintf(sh.out, "Contact %s updated!\n", name)
	return nil
}
