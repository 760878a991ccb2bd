package main

import (
	"errors"
	"flag"
	"io"
)

type StatsCommand struct {
	stdout io.Writer
	stderr io.Writer
	newEnv envFactory
}

func NewStatsCommand(stdout, stderr io.Writer, newEnv envFactory) *StatsCommand {
	return &StatsCommand{stdout: stdout, stderr: stderr, newEnv: newEnv}
}

func (c *StatsCommand) Run(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	metric := fs.String("metric", "", "metric to chart (kcal, distance, duration)")
	period := fs.String("period", "30d", "period, e.g. 7d, 30d, 90d")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *metric == "" {
		return errors.New("--metric is required")
	}

	env, err := c.newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, cancel := commandContext()
	defer cancel()
	points, err := env.client.StatsEvolution(ctx, *metric, *period)
	if err != nil {
		return env.resolveAPIErr(err)
	}
	printStatPoints(c.stdout, *metric, points)
	return nil
}
