package stream

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/adammck/critter"
	"github.com/adammck/critter/control"
	"github.com/adammck/critter/math2d"
	"github.com/adammck/critter/render"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, s *Server) (*websocket.Conn, func()) {
	t.Helper()

	hs := httptest.NewServer(s.Mux())
	url := "ws" + strings.TrimPrefix(hs.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return s.Clients() == 1
	}, time.Second, 5*time.Millisecond)

	return conn, func() {
		conn.Close()
		hs.Close()
	}
}

func testFrame() render.Frame {
	return render.Frame{
		Tick:     7,
		Pose:     math2d.Pose{Position: math2d.Vector2{X: 1, Y: 2}, Heading: 0.5},
		Target:   math2d.Vector2{X: 10, Y: 20},
		Standing: 0.75,
		Lines: []critter.Line{
			{From: math2d.Vector2{X: 1, Y: 2}, To: math2d.Vector2{X: 3, Y: 4}},
		},
	}
}

func TestPublish(t *testing.T) {
	s := NewServer(nil)
	conn, done := dial(t, s)
	defer done()

	require.NoError(t, s.Publish(testFrame()))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var got frameMsg
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, "FRAME", got.Type)
	assert.Equal(t, testFrame(), got.Frame)
}

func TestTargetMessages(t *testing.T) {
	p := control.NewPointer(0, 0)
	s := NewServer(p)
	conn, done := dial(t, s)
	defer done()

	// Junk is ignored.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"HELLO","x":1,"y":1}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"TARGET","x":-30,"y":45.5}`)))

	assert.Eventually(t, func() bool {
		return p.Target() == math2d.Vector2{X: -30, Y: 45.5}
	}, time.Second, 5*time.Millisecond)
}

func TestSlowClientDropsFrames(t *testing.T) {
	s := NewServer(nil)

	// A client which never reads.
	id, ch := s.join()
	defer s.leave(id)

	for i := 0; i < clientBuffer+3; i++ {
		require.NoError(t, s.Publish(testFrame()))
	}

	assert.Len(t, ch, clientBuffer)
	assert.Equal(t, uint64(3), s.Dropped())
}

func TestClientLeaves(t *testing.T) {
	s := NewServer(nil)
	conn, done := dial(t, s)
	defer done()

	conn.Close()
	assert.Eventually(t, func() bool {
		return s.Clients() == 0
	}, time.Second, 5*time.Millisecond)

	// Nobody to send to.
	assert.NoError(t, s.Publish(testFrame()))
}

func TestIndexHandler(t *testing.T) {
	s := NewServer(nil)
	hs := httptest.NewServer(s.Mux())
	defer hs.Close()

	res, err := http.Get(hs.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<canvas")

	res, err = http.Post(hs.URL+"/", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}
