package live

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	responses "github.com/DhavalSuthar-24/crease/pkg/matchresponse"
)

// EventSnapshot is the first message a new subscriber receives.
const EventSnapshot = "MATCH_SNAPSHOT"

// SnapshotFunc loads the current state of a match for a new subscriber.
type SnapshotFunc func(ctx context.Context, matchID uint) (interface{}, error)

type WebSocketHandler struct {
	hub      *Hub
	snapshot SnapshotFunc
	notFound error
	upgrader websocket.Upgrader
}

// NewWebSocketHandler serves subscriptions; snapshot errors matching notFound become 404s.
func NewWebSocketHandler(hub *Hub, snapshot SnapshotFunc, notFound error, allowedOrigin string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:      hub,
		snapshot: snapshot,
		notFound: notFound,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowedOrigin == "*" || origin == "" || origin == allowedOrigin
			},
		},
	}
}

// ServeWs upgrades GET /ws/matches/:id and streams that match's events.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid match ID")
		return
	}
	matchID := uint(id)

	// Unknown matches are refused before the upgrade so the client sees a plain 404.
	if _, err := h.snapshotMessage(c.Request.Context(), matchID); err != nil {
		if h.notFound != nil && errors.Is(err, h.notFound) {
			responses.ErrorResponse(c, http.StatusNotFound, "Match not found")
			return
		}
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to load match")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		log.Printf("Failed to upgrade connection for match %d: %v", matchID, err)
		return
	}

	client := &Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, sendBuffer),
		Room: RoomFor(matchID),
	}
	if !h.hub.Register(client) {
		conn.Close()
		return
	}

	// The snapshot is read after registration, so any commit it misses is queued in Send.
	first, err := h.snapshotMessage(c.Request.Context(), matchID)
	if err == nil {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		err = conn.WriteMessage(websocket.TextMessage, first)
	}
	if err != nil {
		log.Printf("Failed to send snapshot for match %d: %v", matchID, err)
		h.hub.Unregister(client)
		conn.Close()
		return
	}
	go client.WritePump()
	go client.ReadPump()
}

func (h *WebSocketHandler) snapshotMessage(ctx context.Context, matchID uint) ([]byte, error) {
	state, err := h.snapshot(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: EventSnapshot, Payload: state, RoomID: RoomFor(matchID)})
}
