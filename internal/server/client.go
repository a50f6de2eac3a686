package server

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"google.golang.org/grpc/status"

	apperrors "github.com/louisbranch/noir/internal/errors"
	"github.com/louisbranch/noir/internal/noir/wire"
)

const (
	// writeWait bounds a single write to the peer.
	writeWait = 10 * time.Second
	// pongWait bounds the wait for the next pong from the peer.
	pongWait = 60 * time.Second
	// pingPeriod must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// maxMessageSize bounds inbound action envelopes.
	maxMessageSize = 4096
)

// Client is one websocket connection observing a game and, when playerID is
// set, submitting actions for that player.
type Client struct {
	hub      *Hub
	service  *Service
	conn     *websocket.Conn
	gameID   string
	playerID string
	send     chan []byte
}

func newClient(hub *Hub, service *Service, conn *websocket.Conn, gameID, playerID string) *Client {
	return &Client{
		hub:      hub,
		service:  service,
		conn:     conn,
		gameID:   gameID,
		playerID: playerID,
		send:     make(chan []byte, 256),
	}
}

// sendError reports a rejection to this client only.
func (c *Client) sendError(code apperrors.Code, message string) {
	envelope := wire.NewErrorEnvelope(string(code), message)
	envelope.Status = code.GRPCCode().String()
	c.queueError(envelope)
}

// sendRejection reports a submit failure to this client only. The error is
// run through the status mapping so unknown failures leave the process with
// a generic message instead of their internal text.
func (c *Client) sendRejection(err error) {
	st := status.Convert(apperrors.HandleError(err))
	envelope := wire.NewErrorEnvelope(string(apperrors.GetCode(err)), st.Message())
	envelope.Status = st.Code().String()
	c.queueError(envelope)
}

func (c *Client) queueError(envelope wire.ErrorEnvelope) {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

// readPump decodes inbound action envelopes and submits them to the engine.
// Rejections go back on this connection; accepted actions surface as events
// on every room connection.
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read for game %s: %v", c.gameID, err)
			}
			return
		}

		var act wire.Action
		if err := json.Unmarshal(message, &act); err != nil {
			c.sendError(apperrors.CodeWireUnknownAction, "action envelope is not decodable")
			continue
		}
		if c.playerID == "" {
			c.sendError(apperrors.CodeActionNotAllowed, "observer connections cannot act")
			continue
		}
		if err := c.service.Submit(ctx, c.gameID, c.playerID, act); err != nil {
			c.sendRejection(err)
		}
	}
}

// writePump relays queued payloads to the peer and keeps the connection
// alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
