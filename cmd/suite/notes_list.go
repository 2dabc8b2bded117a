package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/benjamonnguyen/pomomo-suite"
	"github.com/charmbracelet/log"
)

const notePreviewLength = 80

// NotesList keeps a local copy of the notes collection, newest first.
type NotesList struct {
	crudList[pomomo.Note, pomomo.NoteID]
}

func NewNotesList(col collection[pomomo.Note, pomomo.NoteID], l *log.Logger) *NotesList {
	if l == nil {
		l = log.Default()
	}
	return &NotesList{crudList[pomomo.Note, pomomo.NoteID]{
		col:  col,
		idOf: func(n pomomo.Note) pomomo.NoteID { return n.ID },
		noun: "note",
		l:    l,
	}}
}

// Add creates a note and puts it first. Blank content returns
// pomomo.ErrValidationSkip without a request.
func (nl *NotesList) Add(ctx context.Context, content string) (pomomo.Note, error) {
	if isBlank(content) {
		return pomomo.Note{}, pomomo.ErrValidationSkip
	}
	return nl.create(ctx, pomomo.NotePatch{Content: strings.TrimSpace(content)}, true)
}

func (nl *NotesList) Edit(ctx context.Context, id pomomo.NoteID, content string) (pomomo.Note, error) {
	if isBlank(content) {
		return pomomo.Note{}, pomomo.ErrValidationSkip
	}
	if _, ok := nl.find(id); !ok {
		return pomomo.Note{}, nl.notFound("update note", id)
	}
	return nl.update(ctx, id, pomomo.NotePatch{Content: strings.TrimSpace(content)})
}

func (nl *NotesList) Render() string {
	return nl.render("Notes", func(n pomomo.Note) string {
		line := fmt.Sprintf("`#%d` %s", n.ID, preview(n.Content))
		if !n.UpdatedAt.IsZero() {
			line += fmt.Sprintf(" <t:%d:R>", n.UpdatedAt.Unix())
		}
		return line
	})
}

func preview(content string) string {
	content = strings.Join(strings.Fields(content), " ")
	runes := []rune(content)
	if len(runes) <= notePreviewLength {
		return content
	}
	return string(runes[:notePreviewLength-1]) + "…"
}
