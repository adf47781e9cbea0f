package main

import (
	"os"

	"github.com/TileDB-Inc/docconf/cmd/docconf/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
