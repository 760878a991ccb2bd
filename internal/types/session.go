package types

// SessionState is the durable client session: the auth credential plus
// whether the onboarding profile is known to exist. ProfileExists is nil
// until the flag has been reconciled against the backend, mirroring the
// "unknown after a fresh login" state.
type SessionState struct {
	Token         string `json:"token"`
	ProfileExists *bool  `json:"profileExists,omitempty"`
}

func (s *SessionState) Authenticated() bool {
	return s != nil && s.Token != ""
}

// AppState holds UI conveniences that survive restarts. Execution state is
// deliberately excluded: it is always re-derived from the backend so stale
// local state cannot survive a crash or multi-device use.
type AppState struct {
	LastRouteID     string `json:"lastRouteId,omitempty"`
	DefaultActivity string `json:"defaultActivity,omitempty"`
}
