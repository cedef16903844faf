package types

import "time"

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: network error
	Error string `json:"error" example:"network error"`
	// HTTP status code.
	// example: 502
	Code int `json:"code" example:"502"`
}

// VersionStatus describes one registered worker version.
type VersionStatus struct {
	// Unique identifier assigned at registration.
	// example: 5f0c6d9e-2b1a-4c57-9d7e-0a4f1f6f2c11
	ID string `json:"id" example:"5f0c6d9e-2b1a-4c57-9d7e-0a4f1f6f2c11"`
	// Lifecycle state: installing, waiting, activating, active or redundant.
	// example: active
	State string `json:"state" example:"active"`
	// Time the version was registered.
	InstalledAt time.Time `json:"installed_at"`
	// Time the version became active; zero while waiting.
	ActivatedAt time.Time `json:"activated_at,omitempty"`
}

// StatusResponse is returned by GET /_sw/status.
type StatusResponse struct {
	// Upstream origin fetches are forwarded to; empty when acting as a forward proxy.
	// example: http://127.0.0.1:5000
	Upstream string `json:"upstream,omitempty" example:"http://127.0.0.1:5000"`
	// Version currently controlling fetches, if any.
	Active *VersionStatus `json:"active,omitempty"`
	// Installed version waiting for the previous one to release control.
	Waiting *VersionStatus `json:"waiting,omitempty"`
	// Seconds since the runtime was created.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
}
