package draw

import (
	"errors"
	"sync"
)

var (
	// ErrInvalidBrush rejects a brush with non-positive width or an
	// opacity outside [0,1] before it reaches the session.
	ErrInvalidBrush = errors.New("draw: invalid brush")

	// ErrStrokeInProgress is returned by operations that require an
	// idle session while a stroke is being drawn.
	ErrStrokeInProgress = errors.New("draw: stroke in progress")

	// ErrNoActiveStroke is returned by ExtendStroke and CommitStroke
	// when no stroke has been begun.
	ErrNoActiveStroke = errors.New("draw: no active stroke")
)

// DefaultBrush matches the pen the board starts with.
var DefaultBrush = Brush{Color: Black, Width: 3.0, Opacity: 1.0}

// Session is the authoritative in-memory state of the document being
// edited: committed strokes, the in-progress point buffer, and the
// linear undo/redo stacks. One controller owns a Session and drives all
// mutations sequentially; the mutex only protects the copy-out getters
// used by renderers and broadcasters.
//
// The session is a two-state machine: Idle (no active points) and
// Drawing (active points buffered). Begin/Extend/Commit move between
// the two; Undo, Redo and Clear require Idle.
type Session struct {
	mu         sync.RWMutex
	committed  []Stroke
	redo       []Stroke
	active     []Point
	brush      Brush
	background Color
	documentID string
}

// NewSession returns an idle session over an empty white document.
func NewSession() *Session {
	return &Session{
		brush:      DefaultBrush,
		background: White,
	}
}

// BeginStroke starts a new stroke at p. Starting a stroke discards the
// redo history: the session keeps a single linear branch, and any
// undone strokes not redone before the next stroke are gone for good.
func (s *Session) BeginStroke(p Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.active) > 0 {
		return ErrStrokeInProgress
	}
	s.active = []Point{p}
	s.redo = nil
	return nil
}

// ExtendStroke appends a sampled point to the stroke in progress.
func (s *Session) ExtendStroke(p Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.active) == 0 {
		return ErrNoActiveStroke
	}
	s.active = append(s.active, p)
	return nil
}

// CommitStroke finalizes the in-progress point buffer into an immutable
// Stroke carrying the session's current brush style and appends it to
// the committed list. The session returns to Idle.
func (s *Session) CommitStroke() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return ErrNoActiveStroke
	}
	if len(s.active) > 0 {
		st := Stroke{
			Points:  append([]Point(nil), s.active...),
			Color:   s.brush.Color,
			Width:   s.brush.Width,
			Opacity: s.brush.Opacity,
		}
		s.committed = append(s.committed, st)
	}
	s.active = nil
	return nil
}

// Undo moves the most recent committed stroke onto the redo stack.
// Undo with nothing committed is a no-op; undo while a stroke is in
// progress is rejected.
func (s *Session) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.active) > 0 {
		return ErrStrokeInProgress
	}
	if n := len(s.committed); n > 0 {
		s.redo = append(s.redo, s.committed[n-1])
		s.committed = s.committed[:n-1]
	}
	return nil
}

// Redo restores the most recently undone stroke. Redo with an empty
// stack is a no-op; redo while drawing is rejected.
func (s *Session) Redo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.active) > 0 {
		return ErrStrokeInProgress
	}
	if n := len(s.redo); n > 0 {
		s.committed = append(s.committed, s.redo[n-1])
		s.redo = s.redo[:n-1]
	}
	return nil
}

// Clear resets the session to an empty white document. The cleared
// strokes are not recoverable through Undo, and the session no longer
// corresponds to any persisted draft.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.active) > 0 {
		return ErrStrokeInProgress
	}
	s.committed = nil
	s.redo = nil
	s.background = White
	s.documentID = ""
	return nil
}

// Drawing reports whether a stroke is in progress.
func (s *Session) Drawing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.active) > 0
}

// Strokes returns a copy of the committed strokes in commit order.
// Point slices are copied too; committed strokes cannot be mutated
// through the returned value.
func (s *Session) Strokes() []Stroke {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneStrokes(s.committed)
}

func cloneStrokes(strokes []Stroke) []Stroke {
	out := make([]Stroke, len(strokes))
	for i, st := range strokes {
		st.Points = append([]Point(nil), st.Points...)
		out[i] = st
	}
	return out
}

// ActivePoints returns a copy of the in-progress point buffer, or nil
// when the session is idle.
func (s *Session) ActivePoints() []Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.active) == 0 {
		return nil
	}
	return append([]Point(nil), s.active...)
}

// Brush returns the session's live brush style.
func (s *Session) Brush() Brush {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.brush
}

// SetBrush replaces the live brush style. The style of already
// committed strokes is unaffected; an in-progress stroke picks up the
// new style because the renderer always reads the live brush.
func (s *Session) SetBrush(b Brush) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brush = b
	return nil
}

// Background returns the document background color.
func (s *Session) Background() Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

// SetBackground replaces the document background color.
func (s *Session) SetBackground(c Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
}

// DocumentID returns the id of the persisted draft this session
// corresponds to, or "" if the document has never been saved.
func (s *Session) DocumentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.documentID
}

// SetDocumentID records the persisted draft identity. The store calls
// this after the first successful save.
func (s *Session) SetDocumentID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documentID = id
}

// ReplaceDocument swaps the session's document for a loaded draft:
// committed strokes, background and draft identity are taken from d,
// the redo stack and any in-progress stroke are discarded.
func (s *Session) ReplaceDocument(d Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed = cloneStrokes(d.Strokes)
	s.redo = nil
	s.active = nil
	s.background = d.Background
	s.documentID = d.ID
}
