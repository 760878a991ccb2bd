package main

import (
	"errors"
	"flag"
	"io"
	"os"

	"stride/internal/app"
	"stride/internal/config"
	"stride/internal/guard"
	"stride/internal/logging"
	"stride/internal/types"
)

type UICommand struct {
	stderr             io.Writer
	newEnv             envFactory
	configureUILogging func(env *commandEnv)
}

func NewUICommand(stderr io.Writer, newEnv envFactory, configureUILogging func(env *commandEnv)) *UICommand {
	return &UICommand{
		stderr:             stderr,
		newEnv:             newEnv,
		configureUILogging: configureUILogging,
	}
}

func (c *UICommand) Run(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	env, err := c.newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if !env.session.Authenticated() {
		return errors.New("not logged in; run `stride login`")
	}
	if c.configureUILogging != nil {
		c.configureUILogging(env)
	}

	// The profile-exists flag may still be unknown after an interrupted
	// login; reconcile it before deciding on the onboarding gate.
	if env.session.ProfileExists == nil {
		if exists := probeProfile(env); exists != nil {
			env.session.ProfileExists = exists
			ctx, cancel := commandContext()
			if err := env.repo.Session().Save(ctx, env.session); err != nil {
				env.log.Warn("session save failed", logging.F("err", err))
			}
			cancel()
		}
	}
	if env.session.ProfileExists != nil && !*env.session.ProfileExists {
		return errors.New("no profile yet; run `stride profile create` first")
	}

	err = app.Run(env.client, guard.New(env.client, env.log), env.repo, env.log, c.uiOptions(env))
	if errors.Is(err, app.ErrAuthExpired) {
		ctx, cancel := commandContext()
		defer cancel()
		if clearErr := env.repo.Session().Clear(ctx); clearErr != nil {
			env.log.Warn("session clear failed", logging.F("err", clearErr))
		}
		return errors.New("session expired; run `stride login`")
	}
	return err
}

// uiOptions preselects the route and activity used last time, falling back
// to the configured default activity. Any of them may be absent.
func (c *UICommand) uiOptions(env *commandEnv) app.Options {
	var opts app.Options
	if activity, ok := types.ParseActivityType(env.cfg.UI.DefaultActivity); ok {
		opts.DefaultActivity = activity
	}
	ctx, cancel := commandContext()
	defer cancel()
	if state, err := env.repo.AppState().Load(ctx); err == nil && state != nil {
		opts.LastRouteID = state.LastRouteID
		if activity, ok := types.ParseActivityType(state.DefaultActivity); ok {
			opts.DefaultActivity = activity
		}
	}
	return opts
}

// configureUILogging redirects the logger to ~/.stride/ui.log so log lines
// cannot tear the alternate screen while the TUI owns the terminal.
func configureUILogging(env *commandEnv) {
	logPath, err := config.UILogPath()
	if err != nil {
		return
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return
	}
	env.log = logging.New(file, logging.ParseLevel(env.cfg.LogLevel()))
	env.log.Info("ui session started", logging.F("backend", env.cfg.BaseURL()))
}
