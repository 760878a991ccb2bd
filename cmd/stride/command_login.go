package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"stride/internal/client"
	"stride/internal/logging"
	"stride/internal/types"
)

type RegisterCommand struct {
	stdout io.Writer
	stderr io.Writer
	newEnv envFactory
}

func NewRegisterCommand(stdout, stderr io.Writer, newEnv envFactory) *RegisterCommand {
	return &RegisterCommand{stdout: stdout, stderr: stderr, newEnv: newEnv}
}

func (c *RegisterCommand) Run(args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*email) == "" {
		return errors.New("--email is required")
	}
	pass, err := resolvePassword(*password, c.stderr)
	if err != nil {
		return err
	}

	env, err := c.newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, cancel := commandContext()
	defer cancel()
	if err := env.client.Register(ctx, client.RegisterRequest{Email: *email, Password: pass}); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "account created; run `stride login` to sign in")
	return nil
}

type LoginCommand struct {
	stdout io.Writer
	stderr io.Writer
	newEnv envFactory
}

func NewLoginCommand(stdout, stderr io.Writer, newEnv envFactory) *LoginCommand {
	return &LoginCommand{stdout: stdout, stderr: stderr, newEnv: newEnv}
}

func (c *LoginCommand) Run(args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*email) == "" {
		return errors.New("--email is required")
	}
	pass, err := resolvePassword(*password, c.stderr)
	if err != nil {
		return err
	}

	env, err := c.newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, cancel := commandContext()
	defer cancel()
	auth, err := env.client.Login(ctx, *email, pass)
	if err != nil {
		return err
	}

	state := &types.SessionState{
		Token:         auth.Token,
		ProfileExists: probeProfile(env),
	}
	if err := env.repo.Session().Save(ctx, state); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	if state.ProfileExists != nil && !*state.ProfileExists {
		fmt.Fprintln(c.stdout, "logged in; no profile yet, run `stride profile create`")
		return nil
	}
	fmt.Fprintln(c.stdout, "logged in")
	return nil
}

// probeProfile reconciles the profile-exists flag right after login. A 404
// means no profile; any other failure leaves the flag unknown so the next
// start can retry the probe.
func probeProfile(env *commandEnv) *bool {
	ctx, cancel := commandContext()
	defer cancel()
	_, err := env.client.GetProfile(ctx)
	switch {
	case err == nil:
		exists := true
		return &exists
	case client.IsNotFound(err):
		exists := false
		return &exists
	default:
		env.log.Warn("profile probe failed", logging.F("err", err))
		return nil
	}
}

type LogoutCommand struct {
	stdout io.Writer
	stderr io.Writer
	newEnv envFactory
}

func NewLogoutCommand(stdout, stderr io.Writer, newEnv envFactory) *LogoutCommand {
	return &LogoutCommand{stdout: stdout, stderr: stderr, newEnv: newEnv}
}

func (c *LogoutCommand) Run(args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
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
	if err := env.repo.Session().Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "logged out")
	return nil
}

type PasswdCommand struct {
	stdout io.Writer
	stderr io.Writer
	newEnv envFactory
}

func NewPasswdCommand(stdout, stderr io.Writer, newEnv envFactory) *PasswdCommand {
	return &PasswdCommand{stdout: stdout, stderr: stderr, newEnv: newEnv}
}

func (c *PasswdCommand) Run(args []string) error {
	fs := flag.NewFlagSet("passwd", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	current := fs.String("current", "", "current password")
	next := fs.String("new", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *current == "" || *next == "" {
		return errors.New("--current and --new are required")
	}

	env, err := c.newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, cancel := commandContext()
	defer cancel()
	req := client.ChangePasswordRequest{
		CurrentPassword: *current,
		NewPassword:     *next,
		ConfirmPassword: *next,
	}
	if err := env.client.ChangePassword(ctx, req); err != nil {
		return env.resolveAPIErr(err)
	}
	fmt.Fprintln(c.stdout, "password changed")
	return nil
}

func resolvePassword(flagValue string, stderr io.Writer) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Fprint(stderr, "password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	pass := strings.TrimRight(line, "\r\n")
	if pass == "" {
		return "", errors.New("password is required")
	}
	return pass, nil
}
