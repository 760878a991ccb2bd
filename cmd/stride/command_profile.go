package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"stride/internal/types"
)

type ProfileCommand struct {
	stdout io.Writer
	stderr io.Writer
	newEnv envFactory
}

func NewProfileCommand(stdout, stderr io.Writer, newEnv envFactory) *ProfileCommand {
	return &ProfileCommand{stdout: stdout, stderr: stderr, newEnv: newEnv}
}

func (c *ProfileCommand) Run(args []string) error {
	if len(args) == 0 {
		return c.show(nil)
	}
	switch args[0] {
	case "show":
		return c.show(args[1:])
	case "create":
		return c.upsert("create", args[1:])
	case "update":
		return c.upsert("update", args[1:])
	default:
		return fmt.Errorf("unknown profile subcommand: %s", args[0])
	}
}

func (c *ProfileCommand) show(args []string) error {
	fs := flag.NewFlagSet("profile show", flag.ContinueOnError)
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
	profile, err := env.client.GetProfile(ctx)
	if err != nil {
		return env.resolveAPIErr(err)
	}
	c.printProfile(profile)
	return nil
}

func (c *ProfileCommand) upsert(verb string, args []string) error {
	fs := flag.NewFlagSet("profile "+verb, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	birthDate := fs.String("birth-date", "", "birth date (YYYY-MM-DD)")
	heightCm := fs.Float64("height-cm", 0, "height in centimeters")
	weightKg := fs.Float64("weight-kg", 0, "weight in kilograms")
	goalKcal := fs.Int("goal-kcal", -1, "daily calorie goal (0 disables the bonus)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if verb == "create" && (*firstName == "" || *lastName == "") {
		return errors.New("--first-name and --last-name are required")
	}

	env, err := c.newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, cancel := commandContext()
	defer cancel()

	profile := &types.Profile{
		FirstName: *firstName,
		LastName:  *lastName,
		BirthDate: *birthDate,
		HeightCm:  *heightCm,
		WeightKg:  *weightKg,
	}
	if *goalKcal >= 0 {
		goal := *goalKcal
		profile.GoalKcalDaily = &goal
	}

	var saved *types.Profile
	if verb == "create" {
		saved, err = env.client.CreateProfile(ctx, profile)
	} else {
		saved, err = env.client.UpdateProfile(ctx, profile)
	}
	if err != nil {
		return env.resolveAPIErr(err)
	}

	// The onboarding gate keys off this flag; a successful create or
	// update settles it.
	exists := true
	env.session.ProfileExists = &exists
	if err := env.repo.Session().Save(ctx, env.session); err != nil {
		env.log.Warn("session save failed")
	}

	c.printProfile(saved)
	return nil
}

func (c *ProfileCommand) printProfile(profile *types.Profile) {
	writer := tabwriter.NewWriter(c.stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintf(writer, "NAME\t%s %s\n", profile.FirstName, profile.LastName)
	if profile.BirthDate != "" {
		fmt.Fprintf(writer, "BIRTH DATE\t%s\n", profile.BirthDate)
	}
	if profile.HeightCm > 0 {
		fmt.Fprintf(writer, "HEIGHT\t%.0f cm\n", profile.HeightCm)
	}
	if profile.WeightKg > 0 {
		fmt.Fprintf(writer, "WEIGHT\t%.1f kg\n", profile.WeightKg)
	}
	if profile.GoalKcalDaily != nil {
		fmt.Fprintf(writer, "DAILY GOAL\t%d kcal\n", *profile.GoalKcalDaily)
	}
	_ = writer.Flush()
}
