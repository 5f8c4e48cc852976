package github

import (
	"errors"
	"fmt"

	"github.com/google/go-github/v57/github"
)

// Category buckets a platform rejection into the handful of situations
// an automated caller can actually act on.
type Category string

const (
	CategoryUnauthorized Category = "unauthorized" // 401
	CategoryForbidden    Category = "forbidden"    // 403
	CategoryNotFound     Category = "not_found"    // 404
	CategoryConflict     Category = "conflict"     // 409
	CategoryInvalid      Category = "invalid"      // 422
	CategoryUnknown      Category = "unknown"
)

// APIError is a categorized platform rejection.
type APIError struct {
	Status   int
	Category Category
	Message  string
}

func (e *APIError) Error() string { return e.Message }

// categorize maps an HTTP status to its category.
func categorize(status int) Category {
	switch status {
	case 401:
		return CategoryUnauthorized
	case 403:
		return CategoryForbidden
	case 404:
		return CategoryNotFound
	case 409:
		return CategoryConflict
	case 422:
		return CategoryInvalid
	default:
		return CategoryUnknown
	}
}

// diagnose maps an HTTP status and response body to an actionable
// diagnostic. The table is fixed; anything unlisted relays the raw
// status and body.
func diagnose(status int, body string) string {
	switch status {
	case 401:
		return "GitHub rejected the token (401): it is invalid, expired, or has been revoked. Run initiate_login to obtain a fresh one."
	case 403:
		return "GitHub denied access (403). Likely causes: the app is not installed for this owner, the organization enforces SSO and the token is not authorized for it, or a rate limit was hit."
	case 404:
		return "Not found or insufficient permission (404). GitHub returns 404 for private resources the token cannot see, so the two cases are indistinguishable."
	case 409:
		return "Write conflict (409): the file changed since it was last inspected and the supplied content SHA is stale. Re-run inspect_target_file and retry with the fresh SHA."
	case 422:
		return "GitHub could not process the request (422): validation failed, for example a pull request for this branch pair already exists."
	default:
		return fmt.Sprintf("GitHub error %d: %s", status, body)
	}
}

// translate converts a go-github error into an APIError with a
// categorized diagnostic, prefixed with what the operation was doing.
// Errors that never reached the platform pass through wrapped.
func translate(err error, action string) error {
	if err == nil {
		return nil
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &APIError{
			Status:   403,
			Category: CategoryForbidden,
			Message:  fmt.Sprintf("%s: GitHub rate limit exceeded, resets at %s", action, rateErr.Rate.Reset.Time),
		}
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		status := ghErr.Response.StatusCode
		return &APIError{
			Status:   status,
			Category: categorize(status),
			Message:  fmt.Sprintf("%s: %s", action, diagnose(status, ghErr.Message)),
		}
	}

	return fmt.Errorf("%s: %w", action, err)
}
