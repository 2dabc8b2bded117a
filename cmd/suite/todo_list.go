package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/benjamonnguyen/pomomo-suite"
	"github.com/charmbracelet/log"
)

// TodoList keeps a local copy of the todos collection. New todos are appended.
type TodoList struct {
	crudList[pomomo.Todo, pomomo.TodoID]
}

func NewTodoList(col collection[pomomo.Todo, pomomo.TodoID], l *log.Logger) *TodoList {
	if l == nil {
		l = log.Default()
	}
	return &TodoList{crudList[pomomo.Todo, pomomo.TodoID]{
		col:  col,
		idOf: func(t pomomo.Todo) pomomo.TodoID { return t.ID },
		noun: "todo",
		l:    l,
	}}
}

// Add creates a todo. Blank titles return pomomo.ErrValidationSkip without a request.
func (tl *TodoList) Add(ctx context.Context, title string) (pomomo.Todo, error) {
	if isBlank(title) {
		return pomomo.Todo{}, pomomo.ErrValidationSkip
	}
	return tl.create(ctx, pomomo.NewTodo{Title: strings.TrimSpace(title)}, false)
}

func (tl *TodoList) Toggle(ctx context.Context, id pomomo.TodoID) (pomomo.Todo, error) {
	todo, ok := tl.find(id)
	if !ok {
		return pomomo.Todo{}, tl.notFound("update todo", id)
	}
	return tl.update(ctx, id, pomomo.TodoPatch{Completed: pomomo.FlagPtr(!todo.Completed)})
}

func (tl *TodoList) Rename(ctx context.Context, id pomomo.TodoID, title string) (pomomo.Todo, error) {
	if isBlank(title) {
		return pomomo.Todo{}, pomomo.ErrValidationSkip
	}
	if _, ok := tl.find(id); !ok {
		return pomomo.Todo{}, tl.notFound("update todo", id)
	}
	title = strings.TrimSpace(title)
	return tl.update(ctx, id, pomomo.TodoPatch{Title: &title})
}

func (tl *TodoList) Render() string {
	return tl.render("Todos", func(t pomomo.Todo) string {
		check := "⬜"
		title := t.Title
		if t.Completed {
			check = "✅"
			title = "~~" + title + "~~"
		}
		return fmt.Sprintf("%s `#%d` %s", check, t.ID, title)
	})
}
