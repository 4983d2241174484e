//go:build mage

// Package main provides build targets for almanac using Mage.
//
// Usage:
//
//	mage build      Compile the almanac binary to bin/
//	mage test       Run all tests
//	mage scenarios  Run the harness scenarios through the CLI
//	mage golden     Regenerate the harness golden files
//	mage lint       Run golangci-lint
//	mage clean      Remove build artifacts
//	mage install    Install almanac to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName   = "almanac"
	binaryDir    = "bin"
	cmdDir       = "./cmd/almanac"
	scenariosDir = "internal/harness/testdata/scenarios"
)

var binary = filepath.Join(binaryDir, binaryName)

// Build compiles the almanac binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", binary, cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Scenarios builds the binary and checks every harness scenario with it.
func Scenarios() error {
	mg.Deps(Build)
	return sh.RunV(binary, "check", scenariosDir)
}

// Golden regenerates the golden trace files used by the harness tests.
func Golden() error {
	return sh.RunV("go", "test", "./internal/harness", "-update")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	return os.RemoveAll(binaryDir)
}

// Install installs almanac to GOPATH/bin.
func Install() error {
	return sh.RunV("go", "install", cmdDir)
}
