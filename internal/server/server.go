package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/louisbranch/noir/internal/noir/event"
)

// catchUpPage bounds how many journaled events one connect replays per
// round-trip.
const catchUpPage = 500

// Server is the websocket gateway host.
type Server struct {
	httpServer *http.Server
	hub        *Hub
	service    *Service
	upgrader   websocket.Upgrader
}

// New creates a gateway server on the address.
func New(addr string, service *Service, hub *Hub) *Server {
	s := &Server{
		hub:     hub,
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Serve runs the hub and HTTP listener until the context is canceled, then
// shuts both down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	hubCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.hub.Run(hubCtx)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("gateway listening at %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown gateway: %w", err)
		}
		return <-errCh
	}
}

// handleWS upgrades a connection and attaches it to a game's room. The
// `game` query parameter is required; `player` marks an acting connection
// and is absent for observers; `after` resumes the event stream past an
// already-seen sequence number.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	gameID := strings.TrimSpace(r.URL.Query().Get("game"))
	if gameID == "" {
		http.Error(w, "game query parameter is required", http.StatusBadRequest)
		return
	}
	playerID := strings.TrimSpace(r.URL.Query().Get("player"))
	var afterSeq uint64
	if after := r.URL.Query().Get("after"); after != "" {
		parsed, err := strconv.ParseUint(after, 10, 64)
		if err != nil {
			http.Error(w, "after query parameter must be a sequence number", http.StatusBadRequest)
			return
		}
		afterSeq = parsed
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade for game %s: %v", gameID, err)
		return
	}

	client := newClient(s.hub, s.service, conn, gameID, playerID)
	s.hub.register <- client

	// Queue the hello and the journal catch-up before the pumps start.
	// Live broadcasts may interleave behind them; clients dedupe by
	// sequence number, and the hello carries none.
	s.greet(client)
	if err := s.catchUp(r.Context(), client, afterSeq); err != nil {
		log.Printf("catch-up for game %s: %v", gameID, err)
	}

	go client.writePump()
	go client.readPump(context.WithoutCancel(r.Context()))
}

// greet queues the hello envelope for a fresh subscription. Hellos are
// connection-scoped: they are never journaled and carry no sequence number.
func (s *Server) greet(client *Client) {
	evt, err := event.New(client.gameID, event.TypeHello,
		event.ActorTypeSystem, "", event.HelloPayload{GameID: client.gameID})
	if err != nil {
		return
	}
	evt.Timestamp = time.Now().UTC()
	payload, err := json.Marshal(envelopeFromEvent(evt))
	if err != nil {
		return
	}
	select {
	case client.send <- payload:
	default:
	}
}

func (s *Server) catchUp(ctx context.Context, client *Client, afterSeq uint64) error {
	for {
		events, err := s.service.Events(ctx, client.gameID, afterSeq, catchUpPage)
		if err != nil {
			return err
		}
		for _, evt := range events {
			payload, err := json.Marshal(envelopeFromEvent(evt))
			if err != nil {
				return err
			}
			select {
			case client.send <- payload:
			default:
				return fmt.Errorf("client queue full during catch-up")
			}
			afterSeq = evt.Seq
		}
		if len(events) < catchUpPage {
			return nil
		}
	}
}
