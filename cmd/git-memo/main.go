package main

import (
	"fmt"
	"os"

	"github.com/kuchuk-borom-debbarma/git-memo/internal/commands"
)

func main() {
	if len(os.Args) < 2 {
		commands.PrintUsage(os.Stdout)
		return
	}

	commandName := os.Args[1]
	switch commandName {
	case "help", "-h", "--help":
		commands.PrintUsage(os.Stdout)
		return
	}

	command, ok := commands.GetCommand(commandName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", commandName)
		commands.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	args := commands.ParseArgs(command, os.Args[2:])
	runner := commands.CommandRunner{}
	if err := runner.Run(command, args); err != nil {
		os.Exit(1)
	}
}
