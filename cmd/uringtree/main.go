package main

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"

	"github.com/hayeah/uringtree"
)

func main() {
	var args uringtree.Args
	arg.MustParse(&args)

	cli, cleanup, err := uringtree.InitTreeCLI(&args, &uringtree.Streams{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing uringtree: %v\n", err)
		os.Exit(1)
	}

	err = cli.Run()
	cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
