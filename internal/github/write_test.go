package github

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/gitsmith/internal/models"
)

func TestInitializeWorkspace(t *testing.T) {
	var createdRef string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/alice/tool/git/ref/heads/main", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, 200, `{"ref":"refs/heads/main","object":{"sha":"basesha1","type":"commit"}}`)
	})
	mux.HandleFunc("/repos/alice/tool/git/refs", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var body struct {
			Ref string `json:"ref"`
			SHA string `json:"sha"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		createdRef = body.Ref
		assert.Equal(t, "basesha1", body.SHA)
		jsonResponse(w, 201, `{"ref":"`+body.Ref+`","object":{"sha":"basesha1"}}`)
	})

	svc := newTestService(t, testLimits(), mux)
	branch, err := svc.InitializeWorkspace(context.Background(), models.RepositoryRef{Owner: "alice", Name: "tool"}, "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(branch.Name, "gitsmith-"), branch.Name)
	assert.Equal(t, "main", branch.Base)
	assert.Equal(t, "basesha1", branch.BaseSHA)
	assert.Equal(t, "refs/heads/"+branch.Name, createdRef)
}

func TestInitializeWorkspaceMissingBaseBranch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, 404, `{"message":"Not Found"}`)
	})

	svc := newTestService(t, testLimits(), mux)
	_, err := svc.InitializeWorkspace(context.Background(), models.RepositoryRef{Owner: "alice", Name: "tool"}, "ghost")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CategoryNotFound, apiErr.Category)
}

func TestCommitFileUpdate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/alice/tool/contents/main.go", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		var body struct {
			Message string `json:"message"`
			Content string `json:"content"`
			SHA     string `json:"sha"`
			Branch  string `json:"branch"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "fix parser", body.Message)
		assert.Equal(t, "blob123", body.SHA)
		assert.Equal(t, "gitsmith-1700000000", body.Branch)
		assert.NotEmpty(t, body.Content) // base64-encoded by the client

		jsonResponse(w, 200, `{"content":{"sha":"blob456"},"commit":{"sha":"commit789"}}`)
	})

	svc := newTestService(t, testLimits(), mux)
	result, err := svc.CommitFileUpdate(context.Background(), models.RepositoryRef{Owner: "alice", Name: "tool"},
		"gitsmith-1700000000", "main.go", "package main\n", "blob123", "fix parser")
	require.NoError(t, err)

	assert.Equal(t, "commit789", result.CommitSHA)
	assert.Equal(t, "blob456", result.NewSHA)
}

func TestCommitFileUpdateStaleSHAIsConflict(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/alice/tool/contents/main.go", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, 409, `{"message":"main.go does not match blob123"}`)
	})

	svc := newTestService(t, testLimits(), mux)
	_, err := svc.CommitFileUpdate(context.Background(), models.RepositoryRef{Owner: "alice", Name: "tool"},
		"b", "main.go", "new content", "blob123", "msg")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CategoryConflict, apiErr.Category)
	assert.Contains(t, apiErr.Message, "stale")
}

func TestCommitFileUpdateRequiresSHA(t *testing.T) {
	svc := newTestService(t, testLimits(), http.NewServeMux())
	_, err := svc.CommitFileUpdate(context.Background(), models.RepositoryRef{Owner: "alice", Name: "tool"},
		"b", "main.go", "content", "", "msg")
	assert.Error(t, err)
}

func TestSubmitReviewRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/alice/tool/pulls", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var body struct {
			Title string `json:"title"`
			Head  string `json:"head"`
			Base  string `json:"base"`
			Body  string `json:"body"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Fix parser", body.Title)
		assert.Equal(t, "gitsmith-1700000000", body.Head)
		assert.Equal(t, "main", body.Base)

		jsonResponse(w, 201, `{"number":42,"title":"Fix parser","html_url":"https://github.com/alice/tool/pull/42"}`)
	})

	svc := newTestService(t, testLimits(), mux)
	pr, err := svc.SubmitReviewRequest(context.Background(), models.RepositoryRef{Owner: "alice", Name: "tool"},
		"gitsmith-1700000000", "Fix parser", "details", "")
	require.NoError(t, err)

	assert.Equal(t, 42, pr.Number)
	assert.Equal(t, "https://github.com/alice/tool/pull/42", pr.URL)
}

func TestSubmitReviewRequestDuplicateIsInvalid(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/alice/tool/pulls", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, 422, `{"message":"A pull request already exists"}`)
	})

	svc := newTestService(t, testLimits(), mux)
	_, err := svc.SubmitReviewRequest(context.Background(), models.RepositoryRef{Owner: "alice", Name: "tool"},
		"head", "Title", "", "main")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CategoryInvalid, apiErr.Category)
}
