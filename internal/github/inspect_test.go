package github

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/gitsmith/internal/models"
)

func TestInspectTargetFile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/alice/tool/contents/main.go", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "main", r.URL.Query().Get("ref"))
		jsonResponse(w, 200, `{"type":"file","name":"main.go","path":"main.go","sha":"blob123","size":21,"content":"package main\n"}`)
	})
	mux.HandleFunc("/repos/alice/tool/commits", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "main.go", r.URL.Query().Get("path"))
		jsonResponse(w, 200, `[
			{"sha":"c1","commit":{"message":"fix parser\n\ndetails","author":{"name":"Alice","date":"2024-03-01T10:00:00Z"}}},
			{"sha":"c2","commit":{"message":"initial","author":{"name":"Alice","date":"2024-02-01T10:00:00Z"}}}
		]`)
	})
	mux.HandleFunc("/repos/alice/tool/commits/c1/pulls", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, 200, `[{"number":41,"title":"Fix the parser","body":"`+strings.Repeat("x", 400)+`","html_url":"https://github.com/alice/tool/pull/41"}]`)
	})

	svc := newTestService(t, testLimits(), mux)
	ins, err := svc.InspectTargetFile(context.Background(), models.RepositoryRef{Owner: "alice", Name: "tool"}, "main.go")
	require.NoError(t, err)

	assert.Equal(t, "blob123", ins.File.SHA)
	assert.Equal(t, "package main\n", ins.File.Content)
	require.Len(t, ins.History, 2)
	assert.Equal(t, "c1", ins.History[0].SHA)
	assert.Equal(t, "Alice", ins.History[0].Author)

	require.NotNil(t, ins.PullRequest)
	assert.Equal(t, 41, ins.PullRequest.Number)
	assert.Equal(t, "Fix the parser", ins.PullRequest.Title)
	// body truncated to the configured cap
	assert.Len(t, ins.PullRequest.Body, 300+len("..."))
}

func TestInspectTargetFileMissingIsLoadBearing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, 404, `{"message":"Not Found"}`)
	})

	svc := newTestService(t, testLimits(), mux)
	_, err := svc.InspectTargetFile(context.Background(), models.RepositoryRef{Owner: "alice", Name: "tool"}, "ghost.go")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CategoryNotFound, apiErr.Category)
}

func TestInspectTargetFileHistoryDegrades(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/alice/tool/contents/main.go", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, 200, `{"type":"file","path":"main.go","sha":"blob123","content":"package main\n"}`)
	})
	mux.HandleFunc("/repos/alice/tool/commits", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, 500, `{"message":"boom"}`)
	})

	svc := newTestService(t, testLimits(), mux)
	ins, err := svc.InspectTargetFile(context.Background(), models.RepositoryRef{Owner: "alice", Name: "tool"}, "main.go")
	require.NoError(t, err)

	assert.Equal(t, "blob123", ins.File.SHA)
	assert.Empty(t, ins.History)
	assert.NotEmpty(t, ins.HistoryNote)
	assert.Nil(t, ins.PullRequest)
}

func TestInspectTargetFileNoLinkedPR(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/alice/tool/contents/main.go", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, 200, `{"type":"file","path":"main.go","sha":"blob123","content":"package main\n"}`)
	})
	mux.HandleFunc("/repos/alice/tool/commits", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, 200, `[{"sha":"c1","commit":{"message":"direct push"}}]`)
	})
	mux.HandleFunc("/repos/alice/tool/commits/c1/pulls", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, 200, `[]`)
	})

	svc := newTestService(t, testLimits(), mux)
	ins, err := svc.InspectTargetFile(context.Background(), models.RepositoryRef{Owner: "alice", Name: "tool"}, "main.go")
	require.NoError(t, err)

	require.Len(t, ins.History, 1)
	assert.Nil(t, ins.PullRequest)
}
