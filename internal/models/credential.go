package models

import "strings"

// TokenPrefixes lists the GitHub token prefixes accepted by the server.
// Each prefix corresponds to a distinct issuance path: ghu_ (GitHub App
// user-to-server token), gho_ (OAuth app token), ghp_ (personal access
// token). Anything else is rejected before a single API call is made.
var TokenPrefixes = []string{"ghu_", "gho_", "ghp_"}

// Credential is an opaque bearer token supplied by the caller on every
// tool invocation. It is never persisted and never logged.
type Credential string

// Valid reports whether the credential is non-empty and carries one of
// the recognized prefixes. Actual validity is only established by the
// platform itself (a 401 on first use).
func (c Credential) Valid() bool {
	if c == "" {
		return false
	}
	for _, prefix := range TokenPrefixes {
		if strings.HasPrefix(string(c), prefix) {
			return true
		}
	}
	return false
}

// String returns a redacted form suitable for logs.
func (c Credential) String() string {
	if len(c) <= 8 {
		return "***"
	}
	return string(c[:4]) + "***"
}
