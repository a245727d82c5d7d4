package net

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"inkpad/internal/draw"
	"inkpad/internal/render"
	"inkpad/internal/store"
)

// Message is the websocket envelope. Editors send pointer and command
// messages; the server answers every mutation with a "state" broadcast
// carrying the full committed stroke list.
type Message struct {
	Type       string        `json:"type"`
	X          float64       `json:"x,omitempty"`
	Y          float64       `json:"y,omitempty"`
	Brush      *draw.Brush   `json:"brush,omitempty"`
	DraftID    string        `json:"draftId,omitempty"`
	Strokes    []draw.Stroke `json:"strokes,omitempty"`
	Background *draw.Color   `json:"background,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// Editor message types. "state" and "error" are server-to-client.
const (
	MsgBegin  = "begin"
	MsgExtend = "extend"
	MsgCommit = "commit"
	MsgUndo   = "undo"
	MsgRedo   = "redo"
	MsgClear  = "clear"
	MsgBrush  = "brush"
	MsgSave   = "save"
	MsgLoad   = "load"
	MsgState  = "state"
	MsgError  = "error"
)

// Server hosts a session over HTTP: /ws for the editor and viewers,
// /snapshot.png for the current render. All session mutations funnel
// through a single run loop, so the session only ever changes on one
// goroutine.
type Server struct {
	session  *draw.Session
	store    *store.Store
	hub      *Hub
	events   chan Message
	upgrader websocket.Upgrader

	// Snapshot render size in pixels.
	Width, Height int
}

func NewServer(session *draw.Session, st *store.Store) *Server {
	return &Server{
		session: session,
		store:   st,
		hub:     NewHub(),
		events:  make(chan Message, 64),
		Width:   1024,
		Height:  768,
	}
}

func (s *Server) Hub() *Hub { return s.hub }

// Run applies incoming editor events to the session, one at a time,
// and broadcasts the resulting document state. It returns when ctx is
// canceled.
func (s *Server) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-s.events:
			s.apply(ctx, msg)
			s.hub.Broadcast(s.stateMessage())
		}
	}
}

func (s *Server) apply(ctx context.Context, msg Message) {
	var err error
	switch msg.Type {
	case MsgBegin:
		err = s.session.BeginStroke(draw.Point{X: msg.X, Y: msg.Y})
	case MsgExtend:
		err = s.session.ExtendStroke(draw.Point{X: msg.X, Y: msg.Y})
	case MsgCommit:
		err = s.session.CommitStroke()
	case MsgUndo:
		err = s.session.Undo()
	case MsgRedo:
		err = s.session.Redo()
	case MsgClear:
		err = s.session.Clear()
	case MsgBrush:
		if msg.Brush != nil {
			err = s.session.SetBrush(*msg.Brush)
		}
	case MsgSave:
		_, err = s.store.Save(ctx, s.session)
	case MsgLoad:
		var d draw.Draft
		if d, err = s.store.Load(ctx, msg.DraftID); err == nil {
			s.session.ReplaceDocument(d)
		}
	default:
		log.Printf("[net] ignoring unknown message type %q", msg.Type)
	}
	if err != nil {
		log.Printf("[net] %s failed: %v", msg.Type, err)
		s.hub.Broadcast(Message{Type: MsgError, Error: err.Error()})
	}
}

func (s *Server) stateMessage() Message {
	bg := s.session.Background()
	return Message{
		Type:       MsgState,
		Strokes:    s.session.Strokes(),
		Background: &bg,
		DraftID:    s.session.DocumentID(),
	}
}

// Handler returns the HTTP mux for the share endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/snapshot.png", s.handleSnapshot)
	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[net] upgrade failed: %v", err)
		return
	}
	s.hub.Add(conn)
	defer func() {
		s.hub.Remove(conn)
		conn.Close()
	}()

	// New clients get the current document right away.
	s.hub.SendTo(conn, s.stateMessage())

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		s.events <- msg
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	var active *render.ActiveStroke
	if pts := s.session.ActivePoints(); len(pts) > 0 {
		active = &render.ActiveStroke{Points: pts, Brush: s.session.Brush()}
	}
	buf, err := render.Snapshot(s.Width, s.Height, s.session.Background(), s.session.Strokes(), active)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf)
}
