// Package store persists figure documents for the HTTP API.
//
// Backends:
//   - [MemoryStore]: in-process, for development and tests
//   - [FileStore]: one JSON file per figure, for a single instance
//   - [MongoStore]: MongoDB, for production multi-instance deployments
//
// Every backend hands out copies: mutating a returned [Record] never
// changes the stored figure until [Store.Update] is called.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/specbox/pkg/errors"
	"github.com/matzehuels/specbox/pkg/figure"
)

// Record is a stored figure.
type Record struct {
	ID        string         `json:"id"`
	Name      string         `json:"name,omitempty"`
	Figure    *figure.Figure `json:"figure"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Summary describes a stored figure without its document.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is the interface for figure storage backends. Implementations are
// safe for concurrent use.
type Store interface {
	// Create stores f under a new id.
	Create(ctx context.Context, name string, f *figure.Figure) (*Record, error)
	// Get returns the figure with id, or an error with code
	// FIGURE_NOT_FOUND.
	Get(ctx context.Context, id string) (*Record, error)
	// List returns every stored figure, newest first.
	List(ctx context.Context) ([]Summary, error)
	// Update replaces the document of an existing figure.
	Update(ctx context.Context, id string, f *figure.Figure) (*Record, error)
	// Delete removes the figure with id.
	Delete(ctx context.Context, id string) error
	// Close releases the backend.
	Close() error
}

// NewID returns a fresh figure id.
func NewID() string {
	return uuid.NewString()
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeFigureNotFound, "figure %s not found", id)
}

func (r *Record) summary() Summary {
	return Summary{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

// clone deep-copies r.
func (r *Record) clone() (*Record, error) {
	f, err := r.Figure.Clone()
	if err != nil {
		return nil, err
	}
	out := *r
	out.Figure = f
	return &out, nil
}

// now is truncated to milliseconds, the resolution MongoDB keeps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
