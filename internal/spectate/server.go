package spectate

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Server exposes a Hub over HTTP:
//
//	GET /healthz   liveness and spectator count
//	GET /snapshot  latest snapshot as JSON
//	GET /ws        snapshot stream, one JSON text message per update
type Server struct {
	hub      *Hub
	logger   *log.Logger
	srv      *http.Server
	listener net.Listener
	upgrader websocket.Upgrader
	done     chan struct{} // Closed by Shutdown; ends open streams
	stopOnce sync.Once
}

// NewServer creates a spectator server that will listen on addr.
func NewServer(addr string, hub *Hub, logger *log.Logger) *Server {
	s := &Server{
		hub:    hub,
		logger: logger,
		done:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Spectating is read-only; any origin may watch.
			CheckOrigin:       func(*http.Request) bool { return true },
			EnableCompression: true,
		},
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the gin router.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.handleHealth)
	r.GET("/snapshot", s.handleSnapshot)
	r.GET("/ws", s.handleWS)
	return r
}

// Start binds the listen address and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.logger.Info("Spectator server listening", "addr", ln.Addr().String())

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Spectator server stopped", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.srv.Addr
	}
	return s.listener.Addr().String()
}

// Shutdown stops accepting connections, ends open WebSocket streams and
// waits for handlers to return.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.done) })
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"spectators": s.hub.Count(),
	})
}

func (s *Server) handleSnapshot(c *gin.Context) {
	snap, ok := s.hub.Latest()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no game published yet"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleWS(c *gin.Context) {
	ws, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}
	defer ws.Close()

	id, updates, cancel := s.hub.Subscribe()
	defer cancel()
	s.logger.Info("Spectator connected", "id", id, "remote", c.ClientIP())
	defer s.logger.Info("Spectator disconnected", "id", id)

	if snap, ok := s.hub.Latest(); ok {
		if err := s.write(ws, snap); err != nil {
			return
		}
	}

	// Spectators send nothing; reading only services control frames and
	// notices the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		ws.SetReadLimit(512)
		_ = ws.SetReadDeadline(time.Now().Add(pongWait))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.logger.Debug("Spectator read error", "id", id, "error", err)
				}
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case <-s.done:
			_ = ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := s.write(ws, snap); err != nil {
				return
			}
		case <-ping.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) write(ws *websocket.Conn, v any) error {
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	return ws.WriteJSON(v)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}
