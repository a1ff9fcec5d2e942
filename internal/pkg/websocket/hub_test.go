package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_ListenersReceivePublishedEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	events := make(chan *Event, 1)
	hub.AddListener(events)
	hub.Publish(Event{Type: EventApplicationSubmitted, ApplicationID: 42, Status: "pending"})

	select {
	case e := <-events:
		assert.Equal(t, EventApplicationSubmitted, e.Type)
		assert.EqualValues(t, 42, e.ApplicationID)
		assert.False(t, e.Timestamp.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestHandler_StreamsEventsToClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/events", func(c *gin.Context) { c.Set("adminID", int64(1)) }, NewHandler(hub, nil, zerolog.Nop()).HandleConnection)
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := gorilla.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/events", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientsCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	hub.Publish(Event{Type: EventApplicationApproved, ApplicationID: 7, Status: "approved"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got Event
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, EventApplicationApproved, got.Type)
	assert.EqualValues(t, 7, got.ApplicationID)
}
