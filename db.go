package pomomo

import "time"

type ExistingRecord[T ~int64] struct {
	ID        T
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewExistingRecord[T ~int64](id int64) ExistingRecord[T] {
	now := time.Now()
	return ExistingRecord[T]{
		ID:        T(id),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type TodoRecord struct {
	Title     string
	Completed bool
}

type ExistingTodoRecord struct {
	ExistingRecord[TodoID]
	TodoRecord
}

func (r ExistingTodoRecord) Todo() Todo {
	return Todo{
		ID:        r.ID,
		Title:     r.Title,
		Completed: r.Completed,
	}
}

type NoteRecord struct {
	Content string
}

type ExistingNoteRecord struct {
	ExistingRecord[NoteID]
	NoteRecord
}

func (r ExistingNoteRecord) Note() Note {
	return Note{
		ID:        r.ID,
		Content:   r.Content,
		UpdatedAt: r.UpdatedAt,
	}
}
