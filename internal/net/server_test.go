package net

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpad/internal/draw"
	"inkpad/internal/store"
)

type memoryBackend struct{ data []byte }

func (m *memoryBackend) ReadBlob(ctx context.Context) ([]byte, error) { return m.data, nil }
func (m *memoryBackend) WriteBlob(ctx context.Context, data []byte) error {
	m.data = append([]byte(nil), data...)
	return nil
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestEditorEventsReachViewers(t *testing.T) {
	session := draw.NewSession()
	server := NewServer(session, store.New(&memoryBackend{}))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go server.Run(ctx)

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	editor := dialWS(t, ts)
	viewer := dialWS(t, ts)

	// Both connections receive the current (empty) document on join.
	assert.Equal(t, MsgState, readMessage(t, editor).Type)
	assert.Equal(t, MsgState, readMessage(t, viewer).Type)

	require.NoError(t, editor.WriteJSON(Message{Type: MsgBegin, X: 0, Y: 0}))
	require.NoError(t, editor.WriteJSON(Message{Type: MsgExtend, X: 5, Y: 5}))
	require.NoError(t, editor.WriteJSON(Message{Type: MsgCommit}))

	// Three mutations, three state broadcasts; the last carries the
	// committed stroke.
	var last Message
	for i := 0; i < 3; i++ {
		last = readMessage(t, viewer)
		require.Equal(t, MsgState, last.Type)
	}
	require.Len(t, last.Strokes, 1)
	assert.Equal(t, []draw.Point{{X: 0, Y: 0}, {X: 5, Y: 5}}, last.Strokes[0].Points)
}

func TestSaveOverWire(t *testing.T) {
	session := draw.NewSession()
	st := store.New(&memoryBackend{})
	server := NewServer(session, st)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go server.Run(ctx)

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	editor := dialWS(t, ts)
	readMessage(t, editor) // join state

	require.NoError(t, editor.WriteJSON(Message{Type: MsgBegin, X: 1, Y: 1}))
	require.NoError(t, editor.WriteJSON(Message{Type: MsgCommit}))
	require.NoError(t, editor.WriteJSON(Message{Type: MsgSave}))

	var last Message
	for i := 0; i < 3; i++ {
		last = readMessage(t, editor)
		require.Equal(t, MsgState, last.Type)
	}
	assert.NotEmpty(t, last.DraftID, "state after save carries the draft id")

	drafts, err := st.List(context.Background())
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, last.DraftID, drafts[0].ID)
}

func TestInvalidEventBroadcastsError(t *testing.T) {
	session := draw.NewSession()
	server := NewServer(session, store.New(&memoryBackend{}))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go server.Run(ctx)

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	editor := dialWS(t, ts)
	readMessage(t, editor) // join state

	// Extend without begin is a protocol error on the editor's part.
	require.NoError(t, editor.WriteJSON(Message{Type: MsgExtend, X: 1, Y: 1}))

	msg := readMessage(t, editor)
	require.Equal(t, MsgError, msg.Type)
	assert.Contains(t, msg.Error, "no active stroke")
}
