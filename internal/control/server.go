package control

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"webdoggy/internal/config"
)

// Server answers control requests over WebSocket. Every text frame carries
// one request and gets exactly one response.
type Server struct {
	cfg      config.ControlConfig
	handle   HandlerFunc
	log      *zap.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewServer returns a server that answers every request with handle. An empty
// path defaults to /ws.
func NewServer(cfg config.ControlConfig, handle HandlerFunc, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Path == "" {
		cfg.Path = "/ws"
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	return &Server{
		cfg:    cfg,
		handle: handle,
		log:    log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades the request and serves it until the peer goes away.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("control upgrade failed", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}
	s.track(conn, true)
	defer func() {
		s.track(conn, false)
		conn.Close()
	}()

	log := s.log.With(zap.String("remote", r.RemoteAddr))
	log.Debug("control client connected")

	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("control read failed", zap.Error(err))
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var resp Response
		var req Request
		if err := json.Unmarshal(payload, &req); err != nil {
			resp = Response{Error: "malformed request"}
		} else {
			resp = s.handle(req)
		}
		log.Debug("control request",
			zap.String("action", req.Action),
			zap.Bool("success", resp.Success))

		data, err := json.Marshal(resp)
		if err != nil {
			log.Error("marshal control response", zap.Error(err))
			return
		}
		conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Debug("control write failed", zap.Error(err))
			return
		}
	}
}

func (s *Server) track(conn *websocket.Conn, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		s.conns[conn] = struct{}{}
	} else {
		delete(s.conns, conn)
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		conn.Close()
	}
}

// ListenAndServe serves on the configured address until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle(s.cfg.Path, s)
	srv := &http.Server{
		Addr:              s.cfg.BindAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		s.closeAll()
	}()

	s.log.Info("control server listening",
		zap.String("addr", s.cfg.BindAddress),
		zap.String("path", s.cfg.Path))

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		return nil
	}
	return err
}
