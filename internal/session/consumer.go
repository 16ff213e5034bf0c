// Package session implements the Session Consumer: one lightweight object
// per live connection, translating between transport frames and Room
// actions. Grounded on the teacher's websocket read/write pump split
// (match_handler.go's per-connection goroutines) and, for the message
// shapes themselves, on original_source/server/games/consumers.py, whose
// connect/disconnect/receive three-method shape this package's Serve,
// Serve's disconnect path, and readPump mirror.
package session

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"literature/internal/room"
)

// Conn is the transport surface a Consumer needs. *websocket.Conn
// satisfies it directly; tests use an in-memory fake.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// RoomLookup resolves a room code to a Room, e.g. (*registry.Registry).GetRoom.
// The Session Consumer deliberately holds only this function plus the room
// code and token — never a cached *room.Room — per spec.md §9's note that
// stale consumers must not prevent room reclamation.
type RoomLookup func(roomID string) (*room.Room, error)

const outboundQueueSize = 16

// textMessage mirrors gorilla/websocket's TextMessage constant, duplicated
// here so this package does not import gorilla/websocket directly.
const textMessage = 1

// Consumer is one live connection's session state.
type Consumer struct {
	roomID      string
	token       string
	displayName string

	lookup RoomLookup
	conn   Conn
	log    *logrus.Entry

	outbound chan room.CurrentState
}

// New constructs a Consumer for a freshly-upgraded connection. roomID,
// token, and displayName come from the connection URL path parameters.
func New(roomID, token, displayName string, lookup RoomLookup, conn Conn, log *logrus.Entry) *Consumer {
	return &Consumer{
		roomID:      roomID,
		token:       token,
		displayName: displayName,
		lookup:      lookup,
		conn:        conn,
		log:         log.WithFields(logrus.Fields{"room_id": roomID, "display_name": displayName}),
		outbound:    make(chan room.CurrentState, outboundQueueSize),
	}
}

// Deliver implements room.Recipient. It never blocks: a saturated consumer
// silently drops the broadcast, since a slow consumer will either catch up
// on the next action or be cleaned up by its own failing read loop.
func (c *Consumer) Deliver(state room.CurrentState) {
	select {
	case c.outbound <- state:
	default:
		c.log.Warn("dropping broadcast: consumer outbound queue is full")
	}
}

// Serve runs the connection's lifetime: registers as a recipient, dispatches
// add_player, then pumps inbound messages to the room until the socket
// closes, and outbound broadcasts to the socket until ctx is cancelled or
// the inbound loop ends. Cancelling ctx does not end the inbound loop.
func (c *Consumer) Serve(ctx context.Context) {
	rm, err := c.lookup(c.roomID)
	if err != nil {
		c.writeError(err, true)
		c.conn.Close()
		return
	}

	rm.RegisterRecipient(c.token, c)
	if err := rm.Dispatch(c.token, room.AddPlayer{Username: c.displayName}); err != nil {
		c.log.WithError(err).Info("add_player rejected at connect")
		rm.UnregisterRecipient(c.token)
		c.writeError(err, true)
		c.conn.Close()
		return
	}

	done := make(chan struct{})
	go c.writePump(ctx, done)
	c.readPump(rm)
	close(done)

	rm.Dispatch(c.token, room.ExitRoom{})
	rm.UnregisterRecipient(c.token)
	c.conn.Close()
}

func (c *Consumer) readPump(rm *room.Room) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		action, err := parseAction(data)
		if err != nil {
			c.writeError(err, false)
			continue
		}
		if err := rm.Dispatch(c.token, action); err != nil {
			c.writeError(err, false)
		}
	}
}

func (c *Consumer) writePump(ctx context.Context, done <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case state := <-c.outbound:
			c.writeSuccess(state)
		}
	}
}

func (c *Consumer) writeSuccess(state room.CurrentState) {
	payload, err := json.Marshal(successEnvelope{Success: true, CurrentState: state})
	if err != nil {
		c.log.WithError(err).Error("failed to marshal broadcast")
		return
	}
	if err := c.conn.WriteMessage(textMessage, payload); err != nil {
		c.log.WithError(err).Debug("failed to write broadcast, connection likely closed")
	}
}

func (c *Consumer) writeError(err error, disconnect bool) {
	payload, marshalErr := json.Marshal(errorEnvelope{
		Success:    false,
		Error:      err.Error(),
		Disconnect: disconnect,
	})
	if marshalErr != nil {
		c.log.WithError(marshalErr).Error("failed to marshal error response")
		return
	}
	_ = c.conn.WriteMessage(textMessage, payload)
}
