// Package web exposes the overlay to its hosting environment over HTTP and
// websocket.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/guidoenr/wallvis/internal/app"
	"github.com/guidoenr/wallvis/internal/overlay"
	"github.com/guidoenr/wallvis/internal/params"
)

const (
	submitTimeout = 2 * time.Second
	writeWait     = 10 * time.Second
	pongWait      = 60 * time.Second
	pingPeriod    = 54 * time.Second
	maxMessage    = 1 << 20
)

// AppInterface is the part of the runtime the transport drives.
type AppInterface interface {
	Submit(ctx context.Context, evt app.Event) error
	Scene() overlay.Scene
	FramePNG() ([]byte, error)
	Subscribe() (<-chan overlay.Scene, func())
}

type Server struct {
	mu       sync.RWMutex
	app      AppInterface
	clients  map[*websocketClient]bool
	upgrader websocket.Upgrader
	log      *log.Logger
	mux      *http.ServeMux
}

type websocketClient struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	server *Server
}

func NewServer(a AppInterface, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Server{
		app:     a,
		clients: make(map[*websocketClient]bool),
		log:     logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	s.mux.HandleFunc("/api/property", s.handleProperty)
	s.mux.HandleFunc("/api/track", s.handleTrack)
	s.mux.HandleFunc("/api/resize", s.handleResize)
	s.mux.HandleFunc("/api/audio", s.handleAudio)
	s.mux.HandleFunc("/api/scene", s.handleScene)
	s.mux.HandleFunc("/api/frame.png", s.handleFrame)
	s.mux.HandleFunc("/api/fonts", s.handleFonts)
	s.mux.HandleFunc("/api/properties", s.handleProperties)
	return s
}

// Handler returns the routes served by Start.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{Addr: addr, Handler: s.mux, ReadHeaderTimeout: 5 * time.Second}

	go s.broadcastLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.log.Printf("[web] server starting on http://0.0.0.0%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.closeClients()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("web server shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleProperty(w http.ResponseWriter, r *http.Request) {
	s.handleMessage(w, r, "property")
}

func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	s.handleMessage(w, r, "track")
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	s.handleMessage(w, r, "resize")
}

func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	s.handleMessage(w, r, "audio")
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request, kind string) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var msg Message
	if err := json.NewDecoder(io.LimitReader(r.Body, maxMessage)).Decode(&msg); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	msg.Type = kind
	evt, err := msg.Event()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), submitTimeout)
	defer cancel()
	if err := s.app.Submit(ctx, evt); err != nil {
		http.Error(w, fmt.Sprintf("submit %s: %v", kind, err), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.app.Scene())
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data, err := s.app.FramePNG()
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}

func (s *Server) handleFonts(w http.ResponseWriter, r *http.Request) {
	families := params.FontFamilies()
	fonts := make([]FontInfo, len(families))
	for i, family := range families {
		fonts[i] = FontInfo{Index: i, Family: family}
	}
	writeJSON(w, http.StatusOK, fonts)
}

func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, params.PropertyNames())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("[web] websocket upgrade error: %v", err)
		return
	}

	client := &websocketClient{
		id:     uuid.New().String(),
		conn:   conn,
		send:   make(chan []byte, 256),
		server: s,
	}

	if data, err := encodeScene(s.app.Scene()); err == nil {
		client.send <- data
	}

	s.mu.Lock()
	s.clients[client] = true
	s.mu.Unlock()
	s.log.Printf("[web] client %s connected from %s", client.id, r.RemoteAddr)

	go client.writePump()
	go client.readPump()
}

func encodeScene(scene overlay.Scene) ([]byte, error) {
	return json.Marshal(SceneMessage{Type: "scene", Scene: scene})
}

// broadcastLoop forwards scene changes from the runtime to every connected
// client.
func (s *Server) broadcastLoop(ctx context.Context) {
	scenes, cancel := s.app.Subscribe()
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case scene := <-scenes:
			data, err := encodeScene(scene)
			if err != nil {
				s.log.Printf("[web] encode scene: %v", err)
				continue
			}
			s.fanOut(data)
		}
	}
}

func (s *Server) fanOut(message []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for client := range s.clients {
		select {
		case client.send <- message:
		default:
			s.log.Printf("[web] client %s too slow, dropping", client.id)
			close(client.send)
			delete(s.clients, client)
		}
	}
}

func (s *Server) removeClient(c *websocketClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clients[c] {
		close(c.send)
		delete(s.clients, c)
	}
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for client := range s.clients {
		close(client.send)
		delete(s.clients, client)
	}
}

func (c *websocketClient) readPump() {
	defer func() {
		c.server.removeClient(c)
		c.conn.Close()
		c.server.log.Printf("[web] client %s disconnected", c.id)
	}()

	c.conn.SetReadLimit(maxMessage)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.server.log.Printf("[web] client %s sent malformed message: %v", c.id, err)
			continue
		}
		evt, err := msg.Event()
		if err != nil {
			c.server.log.Printf("[web] client %s: %v", c.id, err)
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		err = c.server.app.Submit(ctx, evt)
		cancel()
		if err != nil {
			c.server.log.Printf("[web] client %s submit %s: %v", c.id, evt.Kind, err)
			if errors.Is(err, app.ErrStopped) {
				return
			}
		}
	}
}

func (c *websocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
