package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stride/internal/types"
)

const apiPrefix = "/api/v1"

// Client talks to the fitness backend. Scoring is server-owned: the client
// only ships commands and consumes the results.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   token,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetToken swaps the bearer credential, e.g. right after login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Register creates a new account. No credential is required or returned.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/register", req, false, nil)
}

// Login exchanges credentials for a token and adopts it for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password}, false, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errors.New("login response did not include a token")
	}
	c.token = resp.Token
	return &resp, nil
}

func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/change-password", req, true, nil)
}

func (c *Client) GetProfile(ctx context.Context) (*types.Profile, error) {
	var profile types.Profile
	if err := c.doJSON(ctx, http.MethodGet, "/profiles/me", nil, true, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) CreateProfile(ctx context.Context, profile *types.Profile) (*types.Profile, error) {
	if profile == nil {
		return nil, errors.New("profile is required")
	}
	var resp types.Profile
	if err := c.doJSON(ctx, http.MethodPost, "/profiles/me", profile, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateProfile(ctx context.Context, profile *types.Profile) (*types.Profile, error) {
	if profile == nil {
		return nil, errors.New("profile is required")
	}
	var resp types.Profile
	if err := c.doJSON(ctx, http.MethodPut, "/profiles/me", profile, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListRoutes(ctx context.Context) ([]*types.Route, error) {
	var routes []*types.Route
	if err := c.doJSON(ctx, http.MethodGet, "/routes/me", nil, true, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

func (c *Client) GetRoute(ctx context.Context, id string) (*types.Route, error) {
	var route types.Route
	if err := c.doJSON(ctx, http.MethodGet, "/routes/me/"+url.PathEscape(id), nil, true, &route); err != nil {
		return nil, err
	}
	return &route, nil
}

func (c *Client) CreateRoute(ctx context.Context, route *types.Route) (*types.Route, error) {
	if route == nil {
		return nil, errors.New("route is required")
	}
	var resp types.Route
	if err := c.doJSON(ctx, http.MethodPost, "/routes/me", route, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateRoute(ctx context.Context, route *types.Route) (*types.Route, error) {
	if route == nil || route.ID == "" {
		return nil, errors.New("route with id is required")
	}
	var resp types.Route
	if err := c.doJSON(ctx, http.MethodPut, "/routes/me/"+url.PathEscape(route.ID), route, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteRoute(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/routes/me/"+url.PathEscape(id), nil, true, nil)
}

// ListMyExecutions returns every execution of the authenticated user,
// terminal ones included. The guard filters for the active one.
func (c *Client) ListMyExecutions(ctx context.Context) ([]*types.Execution, error) {
	var executions []*types.Execution
	if err := c.doJSON(ctx, http.MethodGet, "/executions/me", nil, true, &executions); err != nil {
		return nil, err
	}
	return executions, nil
}

func (c *Client) StartExecution(ctx context.Context, routeID string, req StartExecutionRequest) (*types.Execution, error) {
	if strings.TrimSpace(routeID) == "" {
		return nil, errors.New("route id is required")
	}
	if !req.ActivityType.Valid() {
		return nil, fmt.Errorf("invalid activity type %q", req.ActivityType)
	}
	var exec types.Execution
	path := "/executions/me/start/" + url.PathEscape(routeID)
	if err := c.doJSON(ctx, http.MethodPost, path, req, true, &exec); err != nil {
		return nil, err
	}
	return &exec, nil
}

func (c *Client) PauseExecution(ctx context.Context, id string) (*types.Execution, error) {
	return c.executionCommand(ctx, "pause", id, nil)
}

func (c *Client) ResumeExecution(ctx context.Context, id string) (*types.Execution, error) {
	return c.executionCommand(ctx, "resume", id, nil)
}

func (c *Client) FinishExecution(ctx context.Context, id string, req FinishExecutionRequest) (*types.Execution, error) {
	if !req.ActivityType.Valid() {
		return nil, fmt.Errorf("invalid activity type %q", req.ActivityType)
	}
	return c.executionCommand(ctx, "finish", id, req)
}

func (c *Client) executionCommand(ctx context.Context, command, id string, body any) (*types.Execution, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("execution id is required")
	}
	var exec types.Execution
	path := "/executions/me/" + command + "/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodPost, path, body, true, &exec); err != nil {
		return nil, err
	}
	return &exec, nil
}

func (c *Client) TodayKpis(ctx context.Context) (*types.DayStats, error) {
	var stats types.DayStats
	if err := c.doJSON(ctx, http.MethodGet, "/home/kpis/today", nil, true, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// StatsEvolution fetches a metric series. Each point arrives as
// {date, <metric>: n}; the first numeric non-date field is taken as the
// value so the client does not hardcode the backend's metric names.
func (c *Client) StatsEvolution(ctx context.Context, metric, period string) ([]types.StatPoint, error) {
	if strings.TrimSpace(metric) == "" {
		return nil, errors.New("metric is required")
	}
	if strings.TrimSpace(period) == "" {
		period = "30d"
	}
	path := "/stats/evolution?metric=" + url.QueryEscape(metric) + "&period=" + url.QueryEscape(period)
	var resp evolutionResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, true, &resp); err != nil {
		return nil, err
	}
	points := make([]types.StatPoint, 0, len(resp.Points))
	for _, raw := range resp.Points {
		point := types.StatPoint{}
		if date, ok := raw["date"].(string); ok {
			point.Date = date
		}
		for key, value := range raw {
			if key == "date" {
				continue
			}
			if n, ok := value.(float64); ok {
				point.Value = n
				break
			}
		}
		points = append(points, point)
	}
	return points, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, requireAuth bool, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requireAuth {
		if strings.TrimSpace(c.token) == "" {
			return errors.New("not logged in; run `stride login`")
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
