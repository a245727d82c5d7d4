// Package store persists named drafts as a single JSON collection blob
// in a pluggable key-value backend.
package store

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"inkpad/internal/draw"
)

var (
	// ErrNotFound is returned by Load when no draft has the given id.
	ErrNotFound = errors.New("store: draft not found")

	// ErrEmptyDocument is returned by Save when the session has no
	// committed strokes; nothing is written.
	ErrEmptyDocument = errors.New("store: nothing to save")
)

// Store is the CRUD layer over the persisted draft collection. Every
// operation is a full read (or read-modify-write) of the collection
// blob. A single mutex serializes operations so two overlapping saves
// cannot clobber each other's read-modify-write cycle.
type Store struct {
	backend Backend
	mu      sync.Mutex

	// Injected for tests.
	now   func() time.Time
	newID func() string
}

func New(backend Backend) *Store {
	return &Store{
		backend: backend,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// List returns all persisted drafts, newest-first by collection
// convention.
func (s *Store) List(ctx context.Context) ([]draw.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readCollection(ctx)
}

// Load returns the draft with the given id.
func (s *Store) Load(ctx context.Context, id string) (draw.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	drafts, err := s.readCollection(ctx)
	if err != nil {
		return draw.Draft{}, err
	}
	for _, d := range drafts {
		if d.ID == id {
			return d, nil
		}
	}
	return draw.Draft{}, ErrNotFound
}

// Save persists the session's document. A session that has never been
// saved gets a fresh id and a timestamp-derived name and is inserted at
// the front of the collection; a session with a draft identity updates
// that draft in place, keeping its id, name and list position.
func (s *Store) Save(ctx context.Context, session *draw.Session) (draw.Draft, error) {
	strokes := session.Strokes()
	if len(strokes) == 0 {
		return draw.Draft{}, ErrEmptyDocument
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	drafts, err := s.readCollection(ctx)
	if err != nil {
		return draw.Draft{}, err
	}

	now := s.now().UTC()
	draft := draw.Draft{
		Strokes:      strokes,
		Background:   session.Background(),
		LastModified: now.Format(time.RFC3339),
	}

	if id := session.DocumentID(); id != "" {
		updated := false
		for i := range drafts {
			if drafts[i].ID == id {
				draft.ID = id
				draft.Name = drafts[i].Name
				drafts[i] = draft
				updated = true
				break
			}
		}
		if !updated {
			// The draft was deleted out from under the session; keep
			// the identity and persist it as a new entry.
			draft.ID = id
			draft.Name = defaultName(now)
			drafts = append([]draw.Draft{draft}, drafts...)
		}
	} else {
		draft.ID = s.newID()
		draft.Name = defaultName(now)
		drafts = append([]draw.Draft{draft}, drafts...)
	}

	data, err := encodeCollection(drafts)
	if err != nil {
		return draw.Draft{}, err
	}
	if err := s.backend.WriteBlob(ctx, data); err != nil {
		return draw.Draft{}, err
	}
	session.SetDocumentID(draft.ID)
	log.Printf("[store] saved draft %s (%d strokes)", draft.ID, len(draft.Strokes))
	return draft, nil
}

// Delete removes the draft with the given id. Deleting an unknown id is
// a no-op; the collection is not rewritten.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts, err := s.readCollection(ctx)
	if err != nil {
		return err
	}
	kept := drafts[:0]
	removed := false
	for _, d := range drafts {
		if d.ID == id {
			removed = true
			continue
		}
		kept = append(kept, d)
	}
	if !removed {
		return nil
	}
	data, err := encodeCollection(kept)
	if err != nil {
		return err
	}
	if err := s.backend.WriteBlob(ctx, data); err != nil {
		return err
	}
	log.Printf("[store] deleted draft %s", id)
	return nil
}

func (s *Store) readCollection(ctx context.Context) ([]draw.Draft, error) {
	data, err := s.backend.ReadBlob(ctx)
	if err != nil {
		return nil, err
	}
	return decodeCollection(data)
}

func defaultName(t time.Time) string {
	return "Drawing " + t.Format("Jan 2, 2006 15:04")
}
