//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "addrbook"
	binaryDir  = "bin"
	cmdDir     = "./cmd/addrbook"
	modulePath = "github.com/mesh-intelligence/addrbook"
)

// ldflags stamps the version from ADDRBOOK_VERSION into the binary.
func ldflags() string {
	v := os.Getenv("ADDRBOOK_VERSION")
	if v == "" {
		return "-s -w"
	}
	return fmt.Sprintf("-s -w -X %s/pkg/addrbook.Version=%s", modulePath, v)
}

// Build compiles the addrbook binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags(),
		"-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
