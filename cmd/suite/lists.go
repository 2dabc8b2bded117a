package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/benjamonnguyen/pomomo-suite"
	"github.com/charmbracelet/log"
)

var errItemNotFound = errors.New("item not found")

type collection[T any, ID ~int64] interface {
	List(context.Context) ([]T, error)
	Create(ctx context.Context, body any) (T, error)
	Update(ctx context.Context, id ID, body any) (T, error)
	Delete(ctx context.Context, id ID) error
}

// ListState is a copy of a list's owned state. Loading is set while any
// request is in flight. Err is the last failure shown to the user and is
// cleared by the next success.
type ListState[T any] struct {
	Items   []T
	Loading bool
	Err     string
}

type crudList[T any, ID ~int64] struct {
	mu      sync.Mutex
	state   ListState[T]
	loaded  bool
	pending int

	col  collection[T, ID]
	idOf func(T) ID
	noun string
	l    *log.Logger
}

func (c *crudList[T, ID]) State() ListState[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Items = slices.Clone(c.state.Items)
	return s
}

func (c *crudList[T, ID]) find(id ID) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	return c.state.Items[i], true
}

func (c *crudList[T, ID]) indexLocked(id ID) int {
	return slices.IndexFunc(c.state.Items, func(item T) bool {
		return c.idOf(item) == id
	})
}

// Load replaces the items with the server's collection.
func (c *crudList[T, ID]) Load(ctx context.Context) error {
	c.begin()
	items, err := c.col.List(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endLocked()
	if err != nil {
		return c.failLocked("load "+c.noun+"s", err)
	}
	c.state.Items = items
	c.state.Err = ""
	c.loaded = true
	return nil
}

// EnsureLoaded loads the collection once.
func (c *crudList[T, ID]) EnsureLoaded(ctx context.Context) error {
	c.mu.Lock()
	loaded := c.loaded
	c.mu.Unlock()
	if loaded {
		return nil
	}
	return c.Load(ctx)
}

func (c *crudList[T, ID]) create(ctx context.Context, body any, prepend bool) (T, error) {
	c.begin()
	item, err := c.col.Create(ctx, body)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endLocked()
	if err != nil {
		return item, c.failLocked("add "+c.noun, err)
	}
	if prepend {
		c.state.Items = slices.Insert(c.state.Items, 0, item)
	} else {
		c.state.Items = append(c.state.Items, item)
	}
	c.state.Err = ""
	return item, nil
}

func (c *crudList[T, ID]) update(ctx context.Context, id ID, body any) (T, error) {
	c.begin()
	item, err := c.col.Update(ctx, id, body)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endLocked()
	if err != nil {
		return item, c.failLocked("update "+c.noun, err)
	}
	if i := c.indexLocked(id); i >= 0 {
		c.state.Items[i] = item
	}
	c.state.Err = ""
	return item, nil
}

// Delete removes the item once the server confirms with 200 or 204.
func (c *crudList[T, ID]) Delete(ctx context.Context, id ID) error {
	c.begin()
	err := c.col.Delete(ctx, id)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endLocked()
	if err != nil {
		return c.failLocked("delete "+c.noun, err)
	}
	c.state.Items = slices.DeleteFunc(c.state.Items, func(item T) bool {
		return c.idOf(item) == id
	})
	c.state.Err = ""
	return nil
}

func (c *crudList[T, ID]) begin() {
	c.mu.Lock()
	c.pending++
	c.state.Loading = true
	c.mu.Unlock()
}

func (c *crudList[T, ID]) endLocked() {
	c.pending--
	c.state.Loading = c.pending > 0
}

func (c *crudList[T, ID]) failLocked(action string, err error) error {
	if errors.Is(err, errItemNotFound) {
		c.state.Err = fmt.Sprintf("Failed to %s: no such %s.", action, c.noun)
	} else {
		c.state.Err = pomomo.UserMessage(action, err)
	}
	c.l.Debug("request failed", "action", action, "err", err)
	return fmt.Errorf("failed to %s: %w", action, err)
}

func (c *crudList[T, ID]) notFound(action string, id ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failLocked(action, fmt.Errorf("%s %d: %w", c.noun, id, errItemNotFound))
}

func (c *crudList[T, ID]) render(title string, line func(T) string) string {
	s := c.State()
	var sb strings.Builder
	sb.WriteString("**" + title + "**\n")
	if s.Err != "" {
		sb.WriteString("⚠️ " + s.Err + "\n")
	}
	if len(s.Items) == 0 {
		sb.WriteString("_Nothing here yet._")
		return sb.String()
	}
	for _, item := range s.Items {
		sb.WriteString(line(item) + "\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
