package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/gitsmith/internal/interfaces"
	"github.com/ternarybob/gitsmith/internal/models"
)

// Ensure interface compliance
var (
	_ interfaces.Authenticator    = (*Authenticator)(nil)
	_ interfaces.CredentialSource = (*Extractor)(nil)
)

const (
	deviceCodePath  = "/login/device/code"
	accessTokenPath = "/login/oauth/access_token"
	deviceGrantType = "urn:ietf:params:oauth:grant-type:device_code"

	// expiredTokenError is the platform error code that terminates
	// polling early, distinct from the local timeout.
	expiredTokenError = "expired_token"
)

// PollPolicy bounds a verify_login polling loop. Passed as data so the
// budget is one configurable parameter instead of a constant hand-rolled
// per call site.
type PollPolicy struct {
	// Fallback cadence when the platform recommended no interval.
	Interval time.Duration
	// Margin added to the platform-recommended interval.
	Margin time.Duration
	// MaxElapsed is the wall-clock budget. The loop returns a timeout
	// result no later than MaxElapsed plus one cadence.
	MaxElapsed time.Duration
}

// DefaultPollPolicy polls every 5s with a 1s margin for up to 120s.
func DefaultPollPolicy() PollPolicy {
	return PollPolicy{
		Interval:   5 * time.Second,
		Margin:     time.Second,
		MaxElapsed: 120 * time.Second,
	}
}

// Authenticator drives the two-step GitHub device flow. Immutable after
// construction; the client ID is the only configuration the flow needs
// (no client secret).
type Authenticator struct {
	clientID string
	scopes   string
	baseURL  string
	policy   PollPolicy
	client   *http.Client
	logger   arbor.ILogger
}

// NewAuthenticator creates a device-flow authenticator. baseURL is the
// OAuth host (https://github.com in production, an httptest server in
// tests).
func NewAuthenticator(clientID, scopes, baseURL string, policy PollPolicy, logger arbor.ILogger) *Authenticator {
	if scopes == "" {
		scopes = "repo read:user"
	}
	if policy.Interval <= 0 {
		policy.Interval = 5 * time.Second
	}
	if policy.MaxElapsed <= 0 {
		policy.MaxElapsed = 120 * time.Second
	}
	return &Authenticator{
		clientID: clientID,
		scopes:   scopes,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		policy:   policy,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   logger,
	}
}

type deviceCodeResponse struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURI string `json:"verification_uri"`
	ExpiresIn       int    `json:"expires_in"`
	Interval        int    `json:"interval"`
}

type accessTokenResponse struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	Scope            string `json:"scope"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// InitiateLogin requests a device/user code pair. It does not block
// waiting for authorization: the session is handed back so the caller
// can show the verification URI and invoke VerifyLogin separately.
func (a *Authenticator) InitiateLogin(ctx context.Context) (*models.DeviceFlowSession, error) {
	if a.clientID == "" {
		return nil, fmt.Errorf("device flow is not configured: GITHUB_CLIENT_ID is missing")
	}

	form := url.Values{
		"client_id": {a.clientID},
		"scope":     {a.scopes},
	}

	body, status, err := a.postForm(ctx, a.baseURL+deviceCodePath, form)
	if err != nil {
		return nil, fmt.Errorf("failed to reach the device code endpoint: %w", err)
	}
	if status < 200 || status >= 300 {
		// Relay the platform body verbatim; it names the actual
		// misconfiguration (bad client ID, disabled flow).
		return nil, fmt.Errorf("device code request failed with status %d: %s", status, string(body))
	}

	var dc deviceCodeResponse
	if err := json.Unmarshal(body, &dc); err != nil {
		return nil, fmt.Errorf("unexpected device code response: %w", err)
	}
	if dc.DeviceCode == "" || dc.UserCode == "" {
		return nil, fmt.Errorf("device code response missing codes: %s", string(body))
	}

	interval := a.policy.Interval
	if dc.Interval > 0 {
		interval = time.Duration(dc.Interval)*time.Second + a.policy.Margin
	}

	a.logger.Info().Str("user_code", dc.UserCode).Msg("Device flow initiated")

	return &models.DeviceFlowSession{
		DeviceCode:      dc.DeviceCode,
		UserCode:        dc.UserCode,
		VerificationURI: dc.VerificationURI,
		PollInterval:    interval,
		StartedAt:       time.Now(),
	}, nil
}

// VerifyLogin polls the token endpoint on a fixed cadence until the
// platform reports success, the device code expires, or the wall-clock
// budget runs out. interval <= 0 selects the policy fallback cadence.
//
// A well-formed poll response lacking both an access token and the
// expired_token error means the user has not authorized yet; only a
// transport-level failure aborts the loop with an error.
func (a *Authenticator) VerifyLogin(ctx context.Context, deviceCode string, interval time.Duration) (*models.LoginResult, error) {
	if deviceCode == "" {
		return nil, fmt.Errorf("device_code is required; call initiate_login first")
	}
	if interval <= 0 {
		interval = a.policy.Interval
	}

	form := url.Values{
		"client_id":   {a.clientID},
		"device_code": {deviceCode},
		"grant_type":  {deviceGrantType},
	}

	start := time.Now()
	polls := 0

	for {
		polls++

		body, _, err := a.postForm(ctx, a.baseURL+accessTokenPath, form)
		if err != nil {
			return nil, fmt.Errorf("token polling failed: %w", err)
		}

		var tok accessTokenResponse
		if err := json.Unmarshal(body, &tok); err != nil {
			return nil, fmt.Errorf("unexpected token response: %w", err)
		}

		if tok.AccessToken != "" {
			a.logger.Info().Int("polls", polls).Msg("Device flow authorized")
			return &models.LoginResult{
				State:       models.LoginSucceeded,
				AccessToken: tok.AccessToken,
				Polls:       polls,
			}, nil
		}
		if tok.Error == expiredTokenError {
			return &models.LoginResult{State: models.LoginExpired, Polls: polls}, nil
		}

		// Anything else (authorization_pending, slow_down, even a
		// non-2xx JSON body) means keep waiting.
		if time.Since(start)+interval > a.policy.MaxElapsed {
			return &models.LoginResult{State: models.LoginTimedOut, Polls: polls}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
}

func (a *Authenticator) postForm(ctx context.Context, endpoint string, form url.Values) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
