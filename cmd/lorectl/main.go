package main

import (
	"os"

	"lorekeeper/cmd/lorectl/commands"
)

var version = "dev"

func main() {
	commands.SetVersion(version)

	// Errors are printed by the printer before they reach here.
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
