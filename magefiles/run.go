//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Compiles a single asset to its .nbr* form via cmd/nbrc.
func (Run) Nbrc(inputPath, outputPath string) error {
	fmt.Println("Run nbrc...")
	_, err := executeCmd("go", withArgs("run", "./cmd/nbrc", "-in", inputPath, "-out", outputPath), withStream())
	return err
}

// Prints an .nbr* file's header and payload summary via cmd/nbrinfo.
func (Run) Nbrinfo(path string) error {
	fmt.Println("Run nbrinfo...")
	_, err := executeCmd("go", withArgs("run", "./cmd/nbrinfo", path), withStream())
	return err
}
