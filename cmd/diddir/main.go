package main

import (
	"os"

	"diddir/cmd/diddir/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
