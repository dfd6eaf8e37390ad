package cli

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/addrbook/internal/book"
	"github.com/mesh-intelligence/addrbook/internal/snapshot"
	"github.com/mesh-intelligence/addrbook/pkg/types"
)

// session owns the book for the lifetime of one command and the snapshot
// it was loaded from.
type session struct {
	book   *book.Book
	snap   types.Snapshot
	info   types.SnapshotInfo
	logger *zap.Logger
}

// openSession loads the configured snapshot. A missing snapshot yields an
// empty book; a damaged one is an error.
func (a *app) openSession() (*session, error) {
	snap, err := snapshot.Open(a.cfg)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}

	contacts, info, err := snap.Load()
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	if info.Fresh {
		a.logger.Info("snapshot not found, starting with an empty address book",
			zap.String("path", info.Path))
	} else {
		a.logger.Debug("snapshot loaded",
			zap.String("path", info.Path),
			zap.String("schema", info.Schema),
			zap.Int("version", info.Version),
			zap.String("save_id", info.SaveID),
			zap.Time("saved_at", info.SavedAt),
			zap.Int("contacts", info.Count),
		)
	}

	return &session{
		book:   book.New(contacts...),
		snap:   snap,
		info:   info,
		logger: a.logger,
	}, nil
}

// save writes the whole book to the snapshot.
func (s *session) save() error {
	if err := s.snap.Save(s.book.List()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	s.logger.Debug("snapshot saved",
		zap.String("path", s.snap.Path()),
		zap.Int("contacts", s.book.Len()))
	return nil
}

// withSession runs fn against a loaded book and then saves it, whether or
// not fn failed, so partial edits are never lost.
func (a *app) withSession(fn func(s *session) error) error {
	s, err := a.openSession()
	if err != nil {
		return err
	}
	return errors.Join(fn(s), s.save())
}

// readSession runs fn against a loaded book without saving.
func (a *app) readSession(fn func(s *session) error) error {
	s, err := a.openSession()
	if err != nil {
		return err
	}
	return fn(s)
}

// logRejected warns about phones that failed validation.
func (s *session) logRejected(name string, rejected []string) {
	for _, p := range rejected {
		s.logger.Warn("phone rejected", zap.String("contact", name), zap.String("phone", p))
	}
}
