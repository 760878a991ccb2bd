package main

import (
	"io"
	"os"
)

type commandRunner interface {
	Run(args []string) error
}

type commandWiring struct {
	stdout             io.Writer
	stderr             io.Writer
	newEnv             envFactory
	configureUILogging func(env *commandEnv)
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:             stdout,
		stderr:             stderr,
		newEnv:             newCommandEnv,
		configureUILogging: configureUILogging,
	}
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	return map[string]commandRunner{
		"register": NewRegisterCommand(wiring.stdout, wiring.stderr, wiring.newEnv),
		"login":    NewLoginCommand(wiring.stdout, wiring.stderr, wiring.newEnv),
		"logout":   NewLogoutCommand(wiring.stdout, wiring.stderr, wiring.newEnv),
		"passwd":   NewPasswdCommand(wiring.stdout, wiring.stderr, wiring.newEnv),
		"profile":  NewProfileCommand(wiring.stdout, wiring.stderr, wiring.newEnv),
		"routes":   NewRoutesCommand(wiring.stdout, wiring.stderr, wiring.newEnv),
		"status":   NewStatusCommand(wiring.stdout, wiring.stderr, wiring.newEnv),
		"stats":    NewStatsCommand(wiring.stdout, wiring.stderr, wiring.newEnv),
		"ui":       NewUICommand(wiring.stderr, wiring.newEnv, wiring.configureUILogging),
	}
}
