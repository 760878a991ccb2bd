package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"stride/internal/types"
)

type RoutesCommand struct {
	stdout io.Writer
	stderr io.Writer
	newEnv envFactory
}

func NewRoutesCommand(stdout, stderr io.Writer, newEnv envFactory) *RoutesCommand {
	return &RoutesCommand{stdout: stdout, stderr: stderr, newEnv: newEnv}
}

func (c *RoutesCommand) Run(args []string) error {
	if len(args) == 0 {
		return c.list(nil)
	}
	switch args[0] {
	case "list":
		return c.list(args[1:])
	case "show":
		return c.show(args[1:])
	case "add":
		return c.add(args[1:])
	case "update":
		return c.update(args[1:])
	case "rm":
		return c.remove(args[1:])
	default:
		return fmt.Errorf("unknown routes subcommand: %s", args[0])
	}
}

func (c *RoutesCommand) list(args []string) error {
	fs := flag.NewFlagSet("routes list", flag.ContinueOnError)
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
	routes, err := env.client.ListRoutes(ctx)
	if err != nil {
		return env.resolveAPIErr(err)
	}
	printRoutes(c.stdout, routes)
	return nil
}

func (c *RoutesCommand) add(args []string) error {
	fs := flag.NewFlagSet("routes add", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	name := fs.String("name", "", "route name")
	start := fs.String("start", "", "start point as lat,lng")
	end := fs.String("end", "", "end point as lat,lng")
	distance := fs.Float64("distance-km", 0, "route distance in kilometers")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return errors.New("--name is required")
	}
	if *start == "" || *end == "" {
		return errors.New("--start and --end are required")
	}
	startPoint, err := parseLatLng(*start)
	if err != nil {
		return err
	}
	endPoint, err := parseLatLng(*end)
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
	route, err := env.client.CreateRoute(ctx, &types.Route{
		Name:       *name,
		Start:      startPoint,
		End:        endPoint,
		DistanceKm: *distance,
	})
	if err != nil {
		return env.resolveAPIErr(err)
	}
	fmt.Fprintf(c.stdout, "created route %s\n", route.ID)
	return nil
}

func (c *RoutesCommand) show(args []string) error {
	fs := flag.NewFlagSet("routes show", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: routes show <id>")
	}

	env, err := c.newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, cancel := commandContext()
	defer cancel()
	route, err := env.client.GetRoute(ctx, fs.Arg(0))
	if err != nil {
		return env.resolveAPIErr(err)
	}
	fmt.Fprintf(c.stdout, "%s\t%s\n", route.ID, route.Name)
	fmt.Fprintf(c.stdout, "start\t%g,%g\n", route.Start.Lat, route.Start.Lng)
	fmt.Fprintf(c.stdout, "end\t%g,%g\n", route.End.Lat, route.End.Lng)
	if route.DistanceKm > 0 {
		fmt.Fprintf(c.stdout, "distance\t%.1f km\n", route.DistanceKm)
	}
	return nil
}

func (c *RoutesCommand) update(args []string) error {
	fs := flag.NewFlagSet("routes update", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	name := fs.String("name", "", "new route name")
	start := fs.String("start", "", "new start point as lat,lng")
	end := fs.String("end", "", "new end point as lat,lng")
	distance := fs.Float64("distance-km", -1, "new distance in kilometers")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: routes update [flags] <id>")
	}

	env, err := c.newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, cancel := commandContext()
	defer cancel()

	// Start from the stored route so unset flags keep their value.
	route, err := env.client.GetRoute(ctx, fs.Arg(0))
	if err != nil {
		return env.resolveAPIErr(err)
	}
	if *name != "" {
		route.Name = *name
	}
	if *start != "" {
		point, err := parseLatLng(*start)
		if err != nil {
			return err
		}
		route.Start = point
	}
	if *end != "" {
		point, err := parseLatLng(*end)
		if err != nil {
			return err
		}
		route.End = point
	}
	if *distance >= 0 {
		route.DistanceKm = *distance
	}

	updated, err := env.client.UpdateRoute(ctx, route)
	if err != nil {
		return env.resolveAPIErr(err)
	}
	fmt.Fprintf(c.stdout, "updated route %s\n", updated.ID)
	return nil
}

func (c *RoutesCommand) remove(args []string) error {
	fs := flag.NewFlagSet("routes rm", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: routes rm <id>")
	}
	id := fs.Arg(0)

	env, err := c.newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, cancel := commandContext()
	defer cancel()
	if err := env.client.DeleteRoute(ctx, id); err != nil {
		return env.resolveAPIErr(err)
	}
	fmt.Fprintf(c.stdout, "deleted route %s\n", id)
	return nil
}
