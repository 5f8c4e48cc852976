// Package auth provides per-call credential extraction and the GitHub
// device-flow login sequence. The two are deliberately independent: the
// authenticator produces a token, the extractor consumes one the caller
// supplies on every subsequent call. Nothing in this package persists
// state between calls.
package auth

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/ternarybob/gitsmith/internal/models"
)

// ErrAuthenticationRequired is returned whenever a usable token cannot
// be extracted. The message names the remediation so an LLM caller can
// recover without guessing.
var ErrAuthenticationRequired = errors.New(
	"authentication required: no valid GitHub token was supplied. " +
		"Run the initiate_login tool to start a device-flow login, " +
		"then pass the resulting token on every call")

type headersKey struct{}

// WithHeaders attaches an inbound call's header set to the context. The
// HTTP serving mode installs this via the server's context func; stdio
// mode never does, which leaves only the environment fallback.
func WithHeaders(ctx context.Context, h http.Header) context.Context {
	return context.WithValue(ctx, headersKey{}, h)
}

// HeadersFromContext returns the header set attached by WithHeaders.
func HeadersFromContext(ctx context.Context) http.Header {
	h, _ := ctx.Value(headersKey{}).(http.Header)
	return h
}

// Extractor pulls a bearer credential out of a call's headers or the
// process environment. Pure function of (headers, environment); it
// issues no platform requests.
type Extractor struct {
	headerName string
	tokenEnv   string
}

// NewExtractor creates an Extractor reading the given header first and
// the given environment variable as fallback.
func NewExtractor(headerName, tokenEnv string) *Extractor {
	if headerName == "" {
		headerName = "X-GitHub-Token"
	}
	if tokenEnv == "" {
		tokenEnv = "GITHUB_TOKEN"
	}
	return &Extractor{headerName: headerName, tokenEnv: tokenEnv}
}

// Token returns a validated credential or ErrAuthenticationRequired.
// Header value wins over the environment fallback; every failure mode
// (missing header, missing fallback, unrecognized prefix) collapses to
// the same error.
func (e *Extractor) Token(ctx context.Context) (models.Credential, error) {
	raw := ""
	if h := HeadersFromContext(ctx); h != nil {
		raw = strings.TrimSpace(h.Get(e.headerName))
	}
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv(e.tokenEnv))
	}

	cred := models.Credential(raw)
	if !cred.Valid() {
		return "", ErrAuthenticationRequired
	}
	return cred, nil
}
