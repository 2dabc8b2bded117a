// Package restapi talks to the todos and notes REST collections.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/benjamonnguyen/pomomo-suite"
	"github.com/charmbracelet/log"
)

const (
	TodosPath = "todos"
	NotesPath = "notes"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	l          *log.Logger
}

// NewClient returns a client for the API at baseURL. The underlying
// http.Client has no timeout; callers bound requests with a context.
func NewClient(baseURL string, l *log.Logger) *Client {
	if l == nil {
		l = log.Default()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		l:          l,
	}
}

func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Collection is a typed view of one REST collection, e.g. /todos.
type Collection[T any, ID ~int64] struct {
	c    *Client
	path string
}

func NewCollection[T any, ID ~int64](c *Client, path string) Collection[T, ID] {
	return Collection[T, ID]{c: c, path: path}
}

func Todos(c *Client) Collection[pomomo.Todo, pomomo.TodoID] {
	return NewCollection[pomomo.Todo, pomomo.TodoID](c, TodosPath)
}

func Notes(c *Client) Collection[pomomo.Note, pomomo.NoteID] {
	return NewCollection[pomomo.Note, pomomo.NoteID](c, NotesPath)
}

func (col Collection[T, ID]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := col.c.do(ctx, http.MethodGet, "list "+col.path, nil, &items, col.path); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (col Collection[T, ID]) Create(ctx context.Context, body any) (T, error) {
	var item T
	err := col.c.do(ctx, http.MethodPost, "create "+col.path, body, &item, col.path)
	return item, err
}

func (col Collection[T, ID]) Update(ctx context.Context, id ID, body any) (T, error) {
	var item T
	err := col.c.do(ctx, http.MethodPut, "update "+col.path, body, &item, col.path, formatID(id))
	return item, err
}

// Delete succeeds on any 2xx, typically 200 or 204.
func (col Collection[T, ID]) Delete(ctx context.Context, id ID) error {
	return col.c.do(ctx, http.MethodDelete, "delete "+col.path, nil, nil, col.path, formatID(id))
}

func formatID[ID ~int64](id ID) string {
	return strconv.FormatInt(int64(id), 10)
}

func (c *Client) do(ctx context.Context, method, op string, body, out any, elem ...string) error {
	fullURL, err := url.JoinPath(c.baseURL, elem...)
	if err != nil {
		return fmt.Errorf("failed to build url: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s body: %w", op, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	c.l.Debug("sending request", "method", method, "url", fullURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &pomomo.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &pomomo.NetworkError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &pomomo.ServerError{Op: op, Status: resp.StatusCode, Body: string(respBody)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	return nil
}
