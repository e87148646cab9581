package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-logr/logr"

	"github.com/peterkuimelis/cardstack/internal/game"
	stacknet "github.com/peterkuimelis/cardstack/internal/net"
	"github.com/peterkuimelis/cardstack/internal/session"
)

//go:embed static
var staticFiles embed.FS

// maxBodyBytes caps request bodies on POST /add_card.
const maxBodyBytes = 1 << 20

// StatusResponse is the body of a successful POST /add_card.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of every 4xx/5xx JSON reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server exposes a session over HTTP and websockets.
type Server struct {
	session        *session.Session
	logger         logr.Logger
	originPatterns []string
	mux            *http.ServeMux
}

// NewServer creates a web server for sess. originPatterns lists extra
// websocket origins to accept besides the request's own host.
func NewServer(sess *session.Session, logger logr.Logger, originPatterns []string) *Server {
	s := &Server{
		session:        sess,
		logger:         logger,
		originPatterns: originPatterns,
		mux:            http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		_, _ = io.Copy(w, f)
	})
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("POST /add_card", s.handleAddCard)
	s.mux.HandleFunc("GET /resolve_stack", s.handleResolve)

	s.mux.HandleFunc("GET /api/state", s.handleState)
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/events", s.handleEvents)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return
	}
	var card game.Card
	if err := json.Unmarshal(body, &card); err != nil {
		s.logger.V(1).Info("rejected card", "error", err.Error())
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.session.Add(card)
	writeJSON(w, http.StatusOK, StatusResponse{Status: stacknet.StatusCardAdded})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Resolve())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.State())
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, game.RegistryCards())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	events := s.session.Events()
	views := make([]*stacknet.EventView, 0, len(events))
	for _, ev := range events {
		views = append(views, stacknet.NewEventView(ev))
	}
	writeJSON(w, http.StatusOK, views)
}

// handleWebSocket speaks the TCP protocol envelopes, one JSON message per frame.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.originPatterns,
	})
	if err != nil {
		s.logger.Error(err, "websocket accept")
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	logger := s.logger.WithValues("remote", r.RemoteAddr)
	logger.Info("websocket connected")

	events, unsubscribe := s.session.Subscribe()
	defer unsubscribe()
	go func() {
		for ev := range events {
			msg := stacknet.ServerMessage{Type: stacknet.TypeNotify, Event: stacknet.NewEventView(ev)}
			if err := wsjson.Write(ctx, wsConn, msg); err != nil {
				return
			}
		}
	}()

	for {
		var raw json.RawMessage
		if err := wsjson.Read(ctx, wsConn, &raw); err != nil {
			// wsjson has already closed the connection on malformed JSON.
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				logger.V(1).Info("websocket closed on malformed JSON", "error", err.Error())
				return
			}
			if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
				logger.Error(err, "websocket read")
			}
			logger.Info("websocket disconnected")
			return
		}

		var reply stacknet.ServerMessage
		msg, err := stacknet.DecodeClientMessage(raw)
		if err != nil {
			reply = stacknet.ErrorMessage(err)
		} else {
			reply = stacknet.Handle(s.session, msg)
		}
		if err := wsjson.Write(ctx, wsConn, reply); err != nil {
			logger.Error(err, "websocket write")
			return
		}
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("http server listening", "addr", addr, "session", s.session.ID)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
