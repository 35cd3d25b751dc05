// Package store persists named layout definitions.
//
// A [Record] wraps a [layoutfile.Definition] with an ID and a creation time.
// Three backends implement [Store]:
//   - [Memory]: in-process map, for tests and single-instance servers
//   - [FileStore]: one JSON file per record under a config directory
//   - [Mongo]: a MongoDB collection, for shared deployments
//
// Every backend is safe for concurrent use. Lookups of unknown IDs fail with
// an error coded [errors.ErrCodeNotFound].
//
//	s := store.NewMemory()
//	rec, err := s.Save(ctx, def)
//	if err != nil {
//	    return err
//	}
//	rec, err = s.Get(ctx, rec.ID)
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/tiler/pkg/errors"
	"github.com/matzehuels/tiler/pkg/layoutfile"
)

// Record is a stored layout definition.
type Record struct {
	ID        string                 `json:"id" bson:"_id"`
	Name      string                 `json:"name" bson:"name"`
	Layout    *layoutfile.Definition `json:"layout" bson:"-"`
	CreatedAt time.Time              `json:"created_at" bson:"created_at"`
}

// Summary is the listing view of a record, without the definition.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary returns the listing view of r.
func (r *Record) Summary() Summary {
	return Summary{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt}
}

// Store is the interface for layout storage backends.
type Store interface {
	// Save validates def and stores it under a fresh ID.
	Save(ctx context.Context, def *layoutfile.Definition) (*Record, error)

	// Get returns the record with the given ID.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns every record, newest first.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes a record. Deleting an unknown ID is a NOT_FOUND error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// newRecord validates def and stamps a new record for it.
func newRecord(def *layoutfile.Definition) (*Record, error) {
	if def == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "layout definition is required")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &Record{
		ID:        uuid.NewString(),
		Name:      def.Name,
		Layout:    def,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}, nil
}

// checkID rejects IDs that are not UUIDs; no backend could hold them.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New(errors.ErrCodeNotFound, "layout %q not found", id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "layout %q not found", id)
}
