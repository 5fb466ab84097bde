package main

import (
	"os"

	"patient-record-manager/cmd/commands"

	"github.com/pterm/pterm"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
