package app

import (
	"context"

	"stride/internal/client"
	"stride/internal/types"
)

// API is the slice of the backend client the UI consumes. *client.Client
// satisfies it; tests substitute fakes.
type API interface {
	ListRoutes(ctx context.Context) ([]*types.Route, error)
	StartExecution(ctx context.Context, routeID string, req client.StartExecutionRequest) (*types.Execution, error)
	PauseExecution(ctx context.Context, id string) (*types.Execution, error)
	ResumeExecution(ctx context.Context, id string) (*types.Execution, error)
	FinishExecution(ctx context.Context, id string, req client.FinishExecutionRequest) (*types.Execution, error)
	GetProfile(ctx context.Context) (*types.Profile, error)
	TodayKpis(ctx context.Context) (*types.DayStats, error)
}
