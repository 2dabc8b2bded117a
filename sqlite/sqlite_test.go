package sqlite

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"testing"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjamonnguyen/pomomo-suite"
)

func openTestDB(t *testing.T) (*sql.DB, txStdLib.DBGetter) {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, dbGetter := txStdLib.NewTransactor(db, txStdLib.NestedTransactionsSavepoints)
	return db, dbGetter
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db, _ := openTestDB(t)

	require.NoError(t, RunMigrations(db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('todos', 'notes')").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestGenerateParameters(t *testing.T) {
	assert.Equal(t, "(?)", generateParameters(1))
	assert.Equal(t, "(?, ?, ?)", generateParameters(3))
	assert.Equal(t, "()", generateParameters(0))
}

func TestTodoRepo(t *testing.T) {
	ctx := context.Background()
	_, dbGetter := openTestDB(t)
	repo := NewTodoRepo(dbGetter, log.New(io.Discard))

	first, err := repo.InsertTodo(ctx, pomomo.TodoRecord{Title: "write"})
	require.NoError(t, err)
	second, err := repo.InsertTodo(ctx, pomomo.TodoRecord{Title: "ship", Completed: true})
	require.NoError(t, err)
	assert.Positive(t, int64(first.ID))
	assert.Greater(t, second.ID, first.ID)

	got, err := repo.GetTodo(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	updated, err := repo.UpdateTodo(ctx, first.ID, pomomo.TodoRecord{Title: "write more", Completed: true})
	require.NoError(t, err)
	assert.Equal(t, "write more", updated.Title)
	assert.True(t, updated.Completed)
	assert.Equal(t, first.CreatedAt, updated.CreatedAt)

	all, err := repo.GetAllTodos(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, updated.Todo(), all[0].Todo())

	deleted, err := repo.DeleteTodo(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "ship", deleted.Title)

	_, err = repo.GetTodo(ctx, second.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTodoRepo_NotFound(t *testing.T) {
	ctx := context.Background()
	_, dbGetter := openTestDB(t)
	repo := NewTodoRepo(dbGetter, log.New(io.Discard))

	_, err := repo.UpdateTodo(ctx, 42, pomomo.TodoRecord{Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.DeleteTodo(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetTodo(ctx, 0)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := repo.GetAllTodos(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestTodoRepo_RequiresTitle(t *testing.T) {
	_, dbGetter := openTestDB(t)
	repo := NewTodoRepo(dbGetter, log.New(io.Discard))

	_, err := repo.InsertTodo(context.Background(), pomomo.TodoRecord{})
	assert.Error(t, err)
}

func TestNoteRepo(t *testing.T) {
	ctx := context.Background()
	_, dbGetter := openTestDB(t)
	repo := NewNoteRepo(dbGetter, log.New(io.Discard))

	older, err := repo.InsertNote(ctx, pomomo.NoteRecord{Content: "older"})
	require.NoError(t, err)
	newer, err := repo.InsertNote(ctx, pomomo.NoteRecord{Content: "newer"})
	require.NoError(t, err)

	all, err := repo.GetAllNotes(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)

	// editing moves a note to the front
	time.Sleep(2 * time.Millisecond)
	edited, err := repo.UpdateNote(ctx, older.ID, pomomo.NoteRecord{Content: "edited"})
	require.NoError(t, err)
	assert.True(t, edited.UpdatedAt.After(older.UpdatedAt))

	all, err = repo.GetAllNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, older.ID, all[0].ID)
	assert.Equal(t, "edited", all[0].Content)

	_, err = repo.DeleteNote(ctx, newer.ID)
	require.NoError(t, err)
	_, err = repo.GetNote(ctx, newer.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
