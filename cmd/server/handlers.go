package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Thiht/transactor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/benjamonnguyen/pomomo-suite"
	"github.com/benjamonnguyen/pomomo-suite/sqlite"
	"github.com/charmbracelet/log"
)

const maxBodyBytes = 1 << 20

type badRequestError string

func (e badRequestError) Error() string {
	return string(e)
}

type server struct {
	todos pomomo.TodoRepo
	notes pomomo.NoteRepo
	tx    transactor.Transactor
	l     *log.Logger
}

func newServer(todos pomomo.TodoRepo, notes pomomo.NoteRepo, tx transactor.Transactor, l *log.Logger) *server {
	return &server{
		todos: todos,
		notes: notes,
		tx:    tx,
		l:     l,
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/todos", func(r chi.Router) {
		r.Get("/", s.listTodos)
		r.Post("/", s.createTodo)
		r.Put("/{id}", s.updateTodo)
		r.Delete("/{id}", s.deleteTodo)
	})
	r.Route("/notes", func(r chi.Router) {
		r.Get("/", s.listNotes)
		r.Post("/", s.createNote)
		r.Put("/{id}", s.updateNote)
		r.Delete("/{id}", s.deleteNote)
	})
	return r
}

func (s *server) listTodos(w http.ResponseWriter, r *http.Request) {
	records, err := s.todos.GetAllTodos(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	todos := make([]pomomo.Todo, 0, len(records))
	for _, rec := range records {
		todos = append(todos, rec.Todo())
	}
	respondJSON(w, todos, http.StatusOK)
}

func (s *server) createTodo(w http.ResponseWriter, r *http.Request) {
	var req pomomo.NewTodo
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		respondError(w, "title is required", http.StatusBadRequest)
		return
	}

	rec, err := s.todos.InsertTodo(r.Context(), pomomo.TodoRecord{Title: title})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.l.Info("created todo", "id", rec.ID)
	respondJSON(w, rec.Todo(), http.StatusCreated)
}

func (s *server) updateTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var patch pomomo.TodoPatch
	if err := decodeBody(w, r, &patch); err != nil {
		s.fail(w, r, err)
		return
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		respondError(w, "title must not be empty", http.StatusBadRequest)
		return
	}

	var updated pomomo.ExistingTodoRecord
	err = s.tx.WithinTransaction(r.Context(), func(ctx context.Context) error {
		existing, err := s.todos.GetTodo(ctx, pomomo.TodoID(id))
		if err != nil {
			return err
		}
		record := existing.TodoRecord
		if patch.Title != nil {
			record.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Completed != nil {
			record.Completed = bool(*patch.Completed)
		}
		updated, err = s.todos.UpdateTodo(ctx, existing.ID, record)
		return err
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, updated.Todo(), http.StatusOK)
}

func (s *server) deleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if _, err := s.todos.DeleteTodo(r.Context(), pomomo.TodoID(id)); err != nil {
		s.fail(w, r, err)
		return
	}
	s.l.Info("deleted todo", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) listNotes(w http.ResponseWriter, r *http.Request) {
	records, err := s.notes.GetAllNotes(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	notes := make([]pomomo.Note, 0, len(records))
	for _, rec := range records {
		notes = append(notes, rec.Note())
	}
	respondJSON(w, notes, http.StatusOK)
}

func (s *server) createNote(w http.ResponseWriter, r *http.Request) {
	var req pomomo.NotePatch
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		respondError(w, "content is required", http.StatusBadRequest)
		return
	}

	rec, err := s.notes.InsertNote(r.Context(), pomomo.NoteRecord{Content: content})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.l.Info("created note", "id", rec.ID)
	respondJSON(w, rec.Note(), http.StatusCreated)
}

func (s *server) updateNote(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req pomomo.NotePatch
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		respondError(w, "content is required", http.StatusBadRequest)
		return
	}

	rec, err := s.notes.UpdateNote(r.Context(), pomomo.NoteID(id), pomomo.NoteRecord{Content: content})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, rec.Note(), http.StatusOK)
}

func (s *server) deleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if _, err := s.notes.DeleteNote(r.Context(), pomomo.NoteID(id)); err != nil {
		s.fail(w, r, err)
		return
	}
	s.l.Info("deleted note", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// fail maps err to a status. Internal details are logged, not returned.
func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, sqlite.ErrNotFound):
		respondError(w, "not found", http.StatusNotFound)
	case errors.As(err, new(badRequestError)):
		respondError(w, err.Error(), http.StatusBadRequest)
	default:
		s.l.Error("request failed", "method", r.Method, "path", r.URL.Path, "requestID", middleware.GetReqID(r.Context()), "err", err)
		respondError(w, "internal error", http.StatusInternalServerError)
	}
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequestError("invalid id")
	}
	return id, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return badRequestError("invalid request body")
	}
	return nil
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("failed to encode response", "err", err)
	}
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, map[string]string{"error": message}, status)
}
