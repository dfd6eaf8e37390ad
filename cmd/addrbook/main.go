// Package main provides the addrbook CLI.
package main

import "github.com/mesh-intelligence/addrbook/internal/cli"

func main() {
	cli.Execute()
}
