package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"stride/internal/client"
	"stride/internal/config"
	"stride/internal/logging"
	"stride/internal/store"
	"stride/internal/types"
)

const commandTimeout = 15 * time.Second

// commandEnv bundles everything a CLI command needs: the effective
// configuration, the durable stores, the API client (already carrying the
// persisted credential) and a logger.
type commandEnv struct {
	cfg     config.Config
	repo    store.Repository
	session *types.SessionState
	client  *client.Client
	log     logging.Logger
}

type envFactory func() (*commandEnv, error)

func newCommandEnv() (*commandEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	dataDir, err := config.DataDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, err
	}

	sessionPath, err := config.SessionPath()
	if err != nil {
		return nil, err
	}
	appStatePath, err := config.AppStatePath()
	if err != nil {
		return nil, err
	}
	dbPath, err := config.DBPath()
	if err != nil {
		return nil, err
	}

	repo, err := store.Open(cfg.StoreBackend(), store.RepositoryPaths{
		SessionPath:  sessionPath,
		AppStatePath: appStatePath,
		DBPath:       dbPath,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	session, err := repo.Session().Load(ctx)
	if err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("load session: %w", err)
	}

	return &commandEnv{
		cfg:     cfg,
		repo:    repo,
		session: session,
		client:  client.New(cfg.BaseURL(), session.Token),
		log:     logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel())),
	}, nil
}

func (e *commandEnv) Close() {
	if e != nil && e.repo != nil {
		_ = e.repo.Close()
	}
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}

// resolveAPIErr maps an auth rejection to the login hint and drops the
// now-useless stored session. All other errors pass through.
func (e *commandEnv) resolveAPIErr(err error) error {
	if err == nil || !client.IsAuthError(err) {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()
	if clearErr := e.repo.Session().Clear(ctx); clearErr != nil {
		e.log.Warn("session clear failed", logging.F("err", clearErr))
	}
	return errors.New("session expired; run `stride login`")
}

func printRoutes(output io.Writer, routes []*types.Route) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tNAME\tDISTANCE")
	for _, route := range routes {
		distance := "-"
		if route.DistanceKm > 0 {
			distance = fmt.Sprintf("%.1f km", route.DistanceKm)
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\n", route.ID, route.Name, distance)
	}
	_ = writer.Flush()
}

func printStatPoints(output io.Writer, metric string, points []types.StatPoint) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintf(writer, "DATE\t%s\n", strings.ToUpper(metric))
	for _, point := range points {
		fmt.Fprintf(writer, "%s\t%g\n", point.Date, point.Value)
	}
	_ = writer.Flush()
}

// parseLatLng parses "lat,lng" as used by the routes flags.
func parseLatLng(raw string) (types.LatLng, error) {
	parts := strings.Split(strings.TrimSpace(raw), ",")
	if len(parts) != 2 {
		return types.LatLng{}, fmt.Errorf("expected lat,lng, got %q", raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return types.LatLng{}, fmt.Errorf("invalid latitude %q", parts[0])
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return types.LatLng{}, fmt.Errorf("invalid longitude %q", parts[1])
	}
	return types.LatLng{Lat: lat, Lng: lng}, nil
}

func exitOnErr(label string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	fmt.Fprintf(stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}
