//go:build mage

// Package main provides build targets for addrbook using Mage.
//
// Usage:
//
//	mage build          Compile the addrbook binary to bin/
//	mage test:all       Run every test with the race detector
//	mage test:cover     Write coverage to bin/coverage.out and print a summary
//	mage test:pkg book  Run the tests of one internal package
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install addrbook to GOPATH/bin
//	mage stats          Print Go LOC and documentation word counts
package main
