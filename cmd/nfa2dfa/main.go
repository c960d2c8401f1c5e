package main

import (
	"log"
	"os"

	"nfa2dfa/internal/cli"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		if !cli.EmitError(root, err) {
			log.SetFlags(0)
			log.Print(err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
