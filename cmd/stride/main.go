package main

import (
	"fmt"
	"os"
)

const usageText = `stride is a terminal client for the stride fitness backend.

Usage:
  stride <command> [flags]

Commands:
  register  create an account
  login     log in and persist the session
  logout    drop the persisted session
  passwd    change the account password
  profile   show or edit the onboarding profile
  routes    list and manage routes
  status    show the active execution, if any
  stats     print a metric evolution series
  ui        run the terminal UI
  help      show help

Flags:
  -h, --help   show help

Examples:
  stride login --email you@example.com
  stride routes add --name "River loop" --start 40.1,-3.7 --end 40.2,-3.6
  stride stats --metric kcal --period 30d
  stride ui
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return
	}

	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}
