//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Binaries builds cmd/nbrc and cmd/nbrinfo into ./bin.
func (Build) Binaries() error {
	fmt.Println("Build nbrc and nbrinfo...")
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/nbrc", "./cmd/nbrc"), withStream()); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/nbrinfo", "./cmd/nbrinfo"), withStream()); err != nil {
		return err
	}
	return nil
}
