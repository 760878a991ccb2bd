package client

import "stride/internal/types"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type StartExecutionRequest struct {
	ActivityType types.ActivityType `json:"activityType"`
	Notes        string             `json:"notes,omitempty"`
}

type FinishExecutionRequest struct {
	ActivityType types.ActivityType `json:"activityType"`
	Notes        string             `json:"notes,omitempty"`
}

type evolutionResponse struct {
	Points []map[string]any `json:"points"`
}
