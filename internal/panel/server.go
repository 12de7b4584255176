package panel

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"repolens.dev/repolens/internal/git"
)

const writeTimeout = 5 * time.Second

// Config holds server configuration
type Config struct {
	// Addr to listen on (default: 127.0.0.1:7483)
	Addr string
}

// DefaultConfig returns sensible defaults. The server binds to loopback only;
// it exposes repository mutation and is not meant to leave the machine.
func DefaultConfig() *Config {
	return &Config{Addr: "127.0.0.1:7483"}
}

// Server manages websocket connections to the panel page. Each connection's
// requests execute sequentially; repository change notifications are
// broadcast to every client.
type Server struct {
	addr     string
	repo     *git.Repo
	handler  *Handler
	listener net.Listener
	server   *http.Server

	clients   map[*websocket.Conn]bool
	clientsMu sync.RWMutex

	broadcast chan Event

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer creates a panel server for the given repository
func NewServer(repo *git.Repo, config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		addr:      config.Addr,
		repo:      repo,
		handler:   NewHandler(repo),
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Event, 64),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Addr returns the address the server is listening on, valid after Start
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Start begins listening and serving the panel
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = ln

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/", s.handlePage)

	s.server = &http.Server{
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
	}

	s.wg.Add(1)
	go s.broadcastLoop()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		slog.Info(fmt.Sprintf("panel listening on http://%s", ln.Addr()))
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("panel server error", slog.Any("error", err))
		}
	}()

	return nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop() error {
	s.cancel()

	s.clientsMu.Lock()
	for conn := range s.clients {
		_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
		delete(s.clients, conn)
	}
	s.clientsMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("panel shutdown error: %w", err)
	}

	s.wg.Wait()
	return nil
}

// NotifyChange broadcasts a refresh notice plus a fresh state snapshot to all
// clients. Called by the repository watcher.
func (s *Server) NotifyChange() {
	refresh, err := NewEvent(EventRefresh, nil)
	if err == nil {
		s.Broadcast(refresh)
	}
	s.Broadcast(s.handler.StateEvent(s.ctx))
}

// Broadcast queues an event for delivery to all connected clients
func (s *Server) Broadcast(event Event) {
	select {
	case s.broadcast <- event:
	case <-s.ctx.Done():
	default:
		slog.Warn("panel broadcast channel full, dropping event")
	}
}

func (s *Server) broadcastLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return

		case event := <-s.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				slog.Error("failed to marshal event", slog.Any("error", err))
				continue
			}

			s.clientsMu.RLock()
			clients := make([]*websocket.Conn, 0, len(s.clients))
			for conn := range s.clients {
				clients = append(clients, conn)
			}
			s.clientsMu.RUnlock()

			for _, conn := range clients {
				if err := s.writeEvent(conn, data); err != nil {
					s.removeClient(conn)
				}
			}
		}
	}
}

func (s *Server) writeEvent(conn *websocket.Conn, data []byte) error {
	ctx, cancel := context.WithTimeout(s.ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, data)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Debug("websocket upgrade failed", slog.Any("error", err))
		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = true
	clientCount := len(s.clients)
	s.clientsMu.Unlock()

	slog.Debug("panel client connected", slog.Int("total", clientCount))

	// Initial snapshot so the page renders without asking
	if data, err := json.Marshal(s.handler.StateEvent(r.Context())); err == nil {
		_ = s.writeEvent(conn, data)
	}

	go s.readLoop(conn)
}

// readLoop processes requests from one client, strictly one at a time
func (s *Server) readLoop(conn *websocket.Conn) {
	defer s.removeClient(conn)

	for {
		_, data, err := conn.Read(s.ctx)
		if err != nil {
			return
		}

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			event := errorEvent(fmt.Sprintf("malformed request: %v", err))
			if raw, merr := json.Marshal(event); merr == nil {
				_ = s.writeEvent(conn, raw)
			}
			continue
		}

		for _, event := range s.handler.Handle(s.ctx, req) {
			raw, err := json.Marshal(event)
			if err != nil {
				continue
			}
			if err := s.writeEvent(conn, raw); err != nil {
				return
			}
		}
	}
}

func (s *Server) removeClient(conn *websocket.Conn) {
	s.clientsMu.Lock()
	_, exists := s.clients[conn]
	if exists {
		delete(s.clients, conn)
	}
	clientCount := len(s.clients)
	s.clientsMu.Unlock()

	if exists {
		_ = conn.Close(websocket.StatusNormalClosure, "")
		slog.Debug("panel client disconnected", slog.Int("total", clientCount))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.clientsMu.RLock()
	clientCount := len(s.clients)
	s.clientsMu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"clients": clientCount,
		"repo":    s.repo.Root(),
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(pageHTML))
}
