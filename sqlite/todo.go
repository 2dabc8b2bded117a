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
	SelectAllTodos = "SELECT id, title, completed, created_at, updated_at FROM todos"
)

type todoEntity struct {
	ID        int64
	Title     string
	Completed bool
	CreatedAt int64
	UpdatedAt int64
}

type todoRepo struct {
	dbGetter txStdLib.DBGetter
	l        *log.Logger
}

func NewTodoRepo(dbGetter txStdLib.DBGetter, logger *log.Logger) *todoRepo {
	return &todoRepo{
		dbGetter: dbGetter,
		l:        logger,
	}
}

func (r *todoRepo) InsertTodo(ctx context.Context, todo pomomo.TodoRecord) (pomomo.ExistingTodoRecord, error) {
	if todo.Title == "" {
		return pomomo.ExistingTodoRecord{}, fmt.Errorf("provide required field 'Title'")
	}

	existingRecord := pomomo.ExistingTodoRecord{
		TodoRecord:     todo,
		ExistingRecord: pomomo.NewExistingRecord[pomomo.TodoID](0),
	}
	e := mapToTodoEntity(existingRecord)

	args := []any{
		e.Title,
		e.Completed,
		e.CreatedAt,
		e.UpdatedAt,
	}
	query := "INSERT INTO todos (title, completed, created_at, updated_at) VALUES " + generateParameters(len(args))
	r.l.Debug("creating todo", "query", query, "args", args)
	res, err := r.dbGetter(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return pomomo.ExistingTodoRecord{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return pomomo.ExistingTodoRecord{}, err
	}

	existingRecord.ID = pomomo.TodoID(id)
	return mapToExistingTodoRecord(mapToTodoEntity(existingRecord)), nil
}

func (r *todoRepo) UpdateTodo(ctx context.Context, id pomomo.TodoID, todo pomomo.TodoRecord) (pomomo.ExistingTodoRecord, error) {
	existing, err := r.GetTodo(ctx, id)
	if err != nil {
		return existing, err
	}

	existing.TodoRecord = todo
	existing.UpdatedAt = time.Now()
	e := mapToTodoEntity(existing)

	query := "UPDATE todos SET title = ?, completed = ?, updated_at = ? WHERE id = ?"
	args := []any{
		e.Title,
		e.Completed,
		e.UpdatedAt,
		e.ID,
	}
	r.l.Debug("updating todo", "query", query, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return pomomo.ExistingTodoRecord{}, err
	}

	return mapToExistingTodoRecord(e), nil
}

func (r *todoRepo) DeleteTodo(ctx context.Context, id pomomo.TodoID) (pomomo.ExistingTodoRecord, error) {
	existing, err := r.GetTodo(ctx, id)
	if err != nil {
		return pomomo.ExistingTodoRecord{}, err
	}

	query := "DELETE FROM todos WHERE id = ?"
	r.l.Debug("deleting todo", "query", query, "id", id)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, id); err != nil {
		return pomomo.ExistingTodoRecord{}, err
	}

	return existing, nil
}

func (r *todoRepo) GetTodo(ctx context.Context, id pomomo.TodoID) (pomomo.ExistingTodoRecord, error) {
	if id <= 0 {
		return pomomo.ExistingTodoRecord{}, ErrNotFound
	}

	row := r.dbGetter(ctx).QueryRowContext(
		ctx,
		fmt.Sprintf("%s WHERE id = ?", SelectAllTodos), id,
	)
	return extractTodo(row)
}

func (r *todoRepo) GetAllTodos(ctx context.Context) ([]pomomo.ExistingTodoRecord, error) {
	query := SelectAllTodos + " ORDER BY id"
	r.l.Debug("getting all todos", "query", query)
	rows, err := r.dbGetter(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	todos := []pomomo.ExistingTodoRecord{}
	for rows.Next() {
		todo, err := extractTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return todos, nil
}

func extractTodo(s scannable) (pomomo.ExistingTodoRecord, error) {
	var e todoEntity
	if err := s.Scan(&e.ID, &e.Title, &e.Completed, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pomomo.ExistingTodoRecord{}, ErrNotFound
		}
		return pomomo.ExistingTodoRecord{}, err
	}

	return mapToExistingTodoRecord(e), nil
}

func mapToTodoEntity(todo pomomo.ExistingTodoRecord) todoEntity {
	return todoEntity{
		ID:        int64(todo.ID),
		Title:     todo.Title,
		Completed: todo.Completed,
		CreatedAt: todo.CreatedAt.UnixMilli(),
		UpdatedAt: todo.UpdatedAt.UnixMilli(),
	}
}

func mapToExistingTodoRecord(e todoEntity) pomomo.ExistingTodoRecord {
	return pomomo.ExistingTodoRecord{
		ExistingRecord: pomomo.ExistingRecord[pomomo.TodoID]{
			ID:        pomomo.TodoID(e.ID),
			CreatedAt: time.UnixMilli(e.CreatedAt).UTC(),
			UpdatedAt: time.UnixMilli(e.UpdatedAt).UTC(),
		},
		TodoRecord: pomomo.TodoRecord{
			Title:     e.Title,
			Completed: e.Completed,
		},
	}
}
