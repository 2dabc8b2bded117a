package main

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjamonnguyen/pomomo-suite"
)

func TestWorkspace_EnsureLoaded(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /todos", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":1,"title":"plan","completed":false}]`)
	})
	mux.HandleFunc("GET /notes", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	c, hits := newTestAPI(t, mux)
	ws := NewWorkspaces(c, discard).Get("c1")

	todosErr, notesErr := ws.EnsureLoaded(context.Background())

	require.NoError(t, todosErr)
	require.Error(t, notesErr)
	assert.Len(t, ws.Todos.State().Items, 1)
	assert.Equal(t, "Failed to load notes: server responded 503 Service Unavailable.", ws.Notes.State().Err)
	assert.Equal(t, int32(2), hits.Load())

	// only the list that failed is fetched again
	_, _ = ws.EnsureLoaded(context.Background())
	assert.Equal(t, int32(3), hits.Load())
}

func TestWorkspaces(t *testing.T) {
	t.Parallel()
	c, _ := newTestAPI(t, http.NewServeMux())
	workspaces := NewWorkspaces(c, discard)

	first := workspaces.Get("c1")
	assert.Same(t, first, workspaces.Get("c1"))
	assert.NotSame(t, first, workspaces.Get("c2"))

	workspaces.Remove(pomomo.ChannelID("c1"))
	assert.NotSame(t, first, workspaces.Get("c1"))
}
