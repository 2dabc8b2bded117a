package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/pomomo-suite"
)

const (
	SelectAllNotes = "SELECT id, content, created_at, updated_at FROM notes"
)

type noteEntity struct {
	ID        int64
	Content   string
	CreatedAt int64
	UpdatedAt int64
}

type noteRepo struct {
	dbGetter txStdLib.DBGetter
	l        *log.Logger
}

func NewNoteRepo(dbGetter txStdLib.DBGetter, logger *log.Logger) *noteRepo {
	return &noteRepo{
		dbGetter: dbGetter,
		l:        logger,
	}
}

func (r *noteRepo) InsertNote(ctx context.Context, note pomomo.NoteRecord) (pomomo.ExistingNoteRecord, error) {
	if note.Content == "" {
		return pomomo.ExistingNoteRecord{}, fmt.Errorf("provide required field 'Content'")
	}

	existingRecord := pomomo.ExistingNoteRecord{
		NoteRecord:     note,
		ExistingRecord: pomomo.NewExistingRecord[pomomo.NoteID](0),
	}
	e := mapToNoteEntity(existingRecord)

	args := []any{
		e.Content,
		e.CreatedAt,
		e.UpdatedAt,
	}
	query := "INSERT INTO notes (content, created_at, updated_at) VALUES " + generateParameters(len(args))
	r.l.Debug("creating note", "query", query, "args", args)
	res, err := r.dbGetter(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return pomomo.ExistingNoteRecord{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return pomomo.ExistingNoteRecord{}, err
	}

	e.ID = id
	return mapToExistingNoteRecord(e), nil
}

func (r *noteRepo) UpdateNote(ctx context.Context, id pomomo.NoteID, note pomomo.NoteRecord) (pomomo.ExistingNoteRecord, error) {
	existing, err := r.GetNote(ctx, id)
	if err != nil {
		return existing, err
	}

	existing.NoteRecord = note
	existing.UpdatedAt = time.Now()
	e := mapToNoteEntity(existing)

	query := "UPDATE notes SET content = ?, updated_at = ? WHERE id = ?"
	args := []any{
		e.Content,
		e.UpdatedAt,
		e.ID,
	}
	r.l.Debug("updating note", "query", query, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return pomomo.ExistingNoteRecord{}, err
	}

	return mapToExistingNoteRecord(e), nil
}

func (r *noteRepo) DeleteNote(ctx context.Context, id pomomo.NoteID) (pomomo.ExistingNoteRecord, error) {
	existing, err := r.GetNote(ctx, id)
	if err != nil {
		return pomomo.ExistingNoteRecord{}, err
	}

	query := "DELETE FROM notes WHERE id = ?"
	r.l.Debug("deleting note", "query", query, "id", id)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, id); err != nil {
		return pomomo.ExistingNoteRecord{}, err
	}

	return existing, nil
}

func (r *noteRepo) GetNote(ctx context.Context, id pomomo.NoteID) (pomomo.ExistingNoteRecord, error) {
	if id <= 0 {
		return pomomo.ExistingNoteRecord{}, ErrNotFound
	}

	row := r.dbGetter(ctx).QueryRowContext(
		ctx,
		fmt.Sprintf("%s WHERE id = ?", SelectAllNotes), id,
	)
	return extractNote(row)
}

// GetAllNotes lists notes most recently updated first.
func (r *noteRepo) GetAllNotes(ctx context.Context) ([]pomomo.ExistingNoteRecord, error) {
	query := SelectAllNotes + " ORDER BY updated_at DESC, id DESC"
	r.l.Debug("getting all notes", "query", query)
	rows, err := r.dbGetter(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	notes := []pomomo.ExistingNoteRecord{}
	for rows.Next() {
		note, err := extractNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

func extractNote(s scannable) (pomomo.ExistingNoteRecord, error) {
	var e noteEntity
	if err := s.Scan(&e.ID, &e.Content, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pomomo.ExistingNoteRecord{}, ErrNotFound
		}
		return pomomo.ExistingNoteRecord{}, err
	}

	return mapToExistingNoteRecord(e), nil
}

func mapToNoteEntity(note pomomo.ExistingNoteRecord) noteEntity {
	return noteEntity{
		ID:        int64(note.ID),
		Content:   note.Content,
		CreatedAt: note.CreatedAt.UnixMilli(),
		UpdatedAt: note.UpdatedAt.UnixMilli(),
	}
}

func mapToExistingNoteRecord(e noteEntity) pomomo.ExistingNoteRecord {
	return pomomo.ExistingNoteRecord{
		ExistingRecord: pomomo.ExistingRecord[pomomo.NoteID]{
			ID:        pomomo.NoteID(e.ID),
			CreatedAt: time.UnixMilli(e.CreatedAt).UTC(),
			UpdatedAt: time.UnixMilli(e.UpdatedAt).UTC(),
		},
		NoteRecord: pomomo.NoteRecord{
			Content: e.Content,
		},
	}
}
