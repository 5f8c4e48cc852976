package github

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnoseCategories(t *testing.T) {
	tests := []struct {
		status   int
		category Category
		keyword  string
	}{
		{401, CategoryUnauthorized, "invalid, expired"},
		{403, CategoryForbidden, "denied"},
		{404, CategoryNotFound, "indistinguishable"},
		{409, CategoryConflict, "conflict"},
		{422, CategoryInvalid, "validation"},
		{500, CategoryUnknown, "500"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("Status%d", tt.status), func(t *testing.T) {
			assert.Equal(t, tt.category, categorize(tt.status))
			assert.Contains(t, diagnose(tt.status, "boom"), tt.keyword)
		})
	}
}

func TestDiagnoseUnknownIncludesBody(t *testing.T) {
	assert.Contains(t, diagnose(502, "bad gateway"), "bad gateway")
}

func TestTranslateErrorResponse(t *testing.T) {
	ghErr := &github.ErrorResponse{
		Response: &http.Response{StatusCode: 409},
		Message:  "sha mismatch",
	}

	err := translate(ghErr, "failed to update main.go")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.Status)
	assert.Equal(t, CategoryConflict, apiErr.Category)
	assert.Contains(t, apiErr.Message, "failed to update main.go")
}

func TestTranslatePassesThroughTransportErrors(t *testing.T) {
	cause := errors.New("connection refused")
	err := translate(cause, "fetch failed")
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.ErrorIs(t, err, cause)
}

func TestTranslateNil(t *testing.T) {
	assert.NoError(t, translate(nil, "anything"))
}
