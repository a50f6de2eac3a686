package server

import (
	"context"
	"log"
	"sync"
)

// roomMessage is one payload bound for every client of a game's room.
type roomMessage struct {
	gameID  string
	payload []byte
}

// Hub maintains the per-game rooms of active websocket clients and fans
// published payloads out to them. A single goroutine owns the room map;
// Publish is safe from any goroutine.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan roomMessage

	mu    sync.Mutex
	rooms map[string]map[*Client]bool
}

// NewHub initializes an empty hub.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomMessage, 64),
		rooms:      make(map[string]map[*Client]bool),
	}
}

// Run processes registrations and broadcasts until the context is canceled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.mu.Lock()
			room, ok := h.rooms[client.gameID]
			if !ok {
				room = make(map[*Client]bool)
				h.rooms[client.gameID] = room
			}
			room[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.gameID]; ok {
				if _, ok := room[client]; ok {
					delete(room, client)
					close(client.send)
					if len(room) == 0 {
						delete(h.rooms, client.gameID)
					}
				}
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.rooms[message.gameID] {
				select {
				case client.send <- message.payload:
				default:
					// Slow consumer: drop the connection, not the game.
					close(client.send)
					delete(h.rooms[message.gameID], client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues a payload for every client observing the game.
func (h *Hub) Publish(gameID string, payload []byte) {
	select {
	case h.broadcast <- roomMessage{gameID: gameID, payload: payload}:
	default:
		log.Printf("hub broadcast queue full, dropping payload for game %s", gameID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for gameID, room := range h.rooms {
		for client := range room {
			close(client.send)
		}
		delete(h.rooms, gameID)
	}
}
