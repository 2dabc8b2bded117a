package pomomo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Todo struct {
	ID        TodoID `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// UnmarshalJSON accepts completed as a boolean or as 0/1.
func (t *Todo) UnmarshalJSON(b []byte) error {
	var aux struct {
		ID        TodoID `json:"id"`
		Title     string `json:"title"`
		Completed Flag   `json:"completed"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*t = Todo{
		ID:        aux.ID,
		Title:     aux.Title,
		Completed: bool(aux.Completed),
	}
	return nil
}

// TodoPatch is the body of PUT /todos/{id}. Nil fields are left untouched.
type TodoPatch struct {
	Title     *string `json:"title,omitempty"`
	Completed *Flag   `json:"completed,omitempty"`
}

type NewTodo struct {
	Title string `json:"title"`
}

type Note struct {
	ID        NoteID    `json:"id"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NotePatch is the body of POST /notes and PUT /notes/{id}.
type NotePatch struct {
	Content string `json:"content"`
}

// Flag is a bool that also decodes from the integers 0 and 1.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	switch strings.TrimSpace(string(b)) {
	case "true", "1":
		*f = true
	case "false", "0", "null":
		*f = false
	default:
		return fmt.Errorf("invalid flag value: %s", b)
	}
	return nil
}

func FlagPtr(b bool) *Flag {
	f := Flag(b)
	return &f
}

type TodoRepo interface {
	InsertTodo(context.Context, TodoRecord) (ExistingTodoRecord, error)
	UpdateTodo(ctx context.Context, id TodoID, r TodoRecord) (ExistingTodoRecord, error)
	DeleteTodo(ctx context.Context, id TodoID) (ExistingTodoRecord, error)
	GetTodo(ctx context.Context, id TodoID) (ExistingTodoRecord, error)
	GetAllTodos(context.Context) ([]ExistingTodoRecord, error)
}

type NoteRepo interface {
	InsertNote(context.Context, NoteRecord) (ExistingNoteRecord, error)
	UpdateNote(ctx context.Context, id NoteID, r NoteRecord) (ExistingNoteRecord, error)
	DeleteNote(ctx context.Context, id NoteID) (ExistingNoteRecord, error)
	GetNote(ctx context.Context, id NoteID) (ExistingNoteRecord, error)
	GetAllNotes(context.Context) ([]ExistingNoteRecord, error)
}
