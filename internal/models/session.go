package models

import "time"

// DeviceFlowSession holds the transient state of one device-flow login
// attempt. It lives in memory for the duration of a single tool call and
// is never persisted: if the process restarts mid-flow the caller starts
// over from initiate_login.
type DeviceFlowSession struct {
	DeviceCode      string
	UserCode        string
	VerificationURI string
	PollInterval    time.Duration
	StartedAt       time.Time
}

// LoginState is the terminal state of a verify_login polling loop.
type LoginState string

const (
	LoginSucceeded LoginState = "succeeded"
	LoginExpired   LoginState = "expired"
	LoginTimedOut  LoginState = "timed_out"
)

// LoginResult is the outcome of a completed polling loop. AccessToken is
// set only when State is LoginSucceeded.
type LoginResult struct {
	State       LoginState
	AccessToken string
	Polls       int
}
