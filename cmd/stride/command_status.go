package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"stride/internal/elapsed"
	"stride/internal/guard"
	"stride/internal/types"
)

type StatusCommand struct {
	stdout io.Writer
	stderr io.Writer
	newEnv envFactory
}

func NewStatusCommand(stdout, stderr io.Writer, newEnv envFactory) *StatusCommand {
	return &StatusCommand{stdout: stdout, stderr: stderr, newEnv: newEnv}
}

func (c *StatusCommand) Run(args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	env, err := c.newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, cancel := commandContext()
	defer cancel()
	active := guard.New(env.client, env.log).Check(ctx)
	if active == nil {
		fmt.Fprintln(c.stdout, "no active execution")
		return nil
	}

	state := "in progress"
	if active.Status == types.ExecutionStatusPaused {
		state = "paused"
	}
	clock := elapsed.Format(elapsed.ForExecution(time.Now(), active))
	fmt.Fprintf(c.stdout, "execution %s %s, elapsed %s\n", active.ID, state, clock)
	return nil
}
