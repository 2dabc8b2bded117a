package main

import (
	"context"

	"github.com/benjamonnguyen/pomomo-suite"
	"github.com/benjamonnguyen/pomomo-suite/restapi"
	"github.com/charmbracelet/log"
)

// Workspace holds the lists shown in one channel.
type Workspace struct {
	Todos *TodoList
	Notes *NotesList
}

type Workspaces struct {
	cache  *channelCache[*Workspace]
	client *restapi.Client
	l      *log.Logger
}

func NewWorkspaces(client *restapi.Client, l *log.Logger) *Workspaces {
	return &Workspaces{
		cache:  newChannelCache[*Workspace](),
		client: client,
		l:      l,
	}
}

func (w *Workspaces) Get(channelID pomomo.ChannelID) *Workspace {
	return w.cache.GetOrCreate(channelID, func() *Workspace {
		l := w.l.With("channelID", channelID)
		return &Workspace{
			Todos: NewTodoList(restapi.Todos(w.client), l),
			Notes: NewNotesList(restapi.Notes(w.client), l),
		}
	})
}

func (w *Workspaces) Remove(channelID pomomo.ChannelID) {
	w.cache.Remove(channelID)
}

// EnsureLoaded loads whichever lists have not been loaded yet. Both requests
// run concurrently and each list keeps its own error state.
func (ws *Workspace) EnsureLoaded(ctx context.Context) (todosErr, notesErr error) {
	todos := restapi.Async(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, ws.Todos.EnsureLoaded(ctx)
	})
	notes := restapi.Async(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, ws.Notes.EnsureLoaded(ctx)
	})
	return (<-todos).Err, (<-notes).Err
}
