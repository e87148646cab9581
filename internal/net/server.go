package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/peterkuimelis/cardstack/internal/session"
)

// Server lets any number of TCP clients share one session.
type Server struct {
	Addr    string
	Session *session.Session
	Logger  logr.Logger
}

// Run listens on s.Addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.Logger.Info("waiting for clients", "addr", ln.Addr().String(), "session", s.Session.ID)
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled or ln fails, then
// closes every open connection and waits for their handlers.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	var g errgroup.Group
	for {
		conn, err := ln.Accept()
		if err != nil {
			cancel()
			_ = g.Wait()
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		g.Go(func() error {
			s.handleConn(connCtx, conn)
			return nil
		})
	}
}

// ServeConn serves a single connection, such as one end of a net.Pipe used by
// the host's own REPL, until it closes or ctx is cancelled.
func (s *Server) ServeConn(ctx context.Context, conn net.Conn) {
	s.handleConn(ctx, conn)
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	logger := s.Logger.WithValues("remote", conn.RemoteAddr().String())
	logger.Info("client connected")
	defer logger.Info("client disconnected")

	c := newConnController(conn)

	events, unsubscribe := s.Session.Subscribe()
	defer unsubscribe()
	go func() {
		for ev := range events {
			if err := c.send(ServerMessage{Type: TypeNotify, Event: NewEventView(ev)}); err != nil {
				return
			}
		}
	}()

	for {
		raw, err := c.receive()
		if err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				logger.Error(err, "read message")
			}
			return
		}
		reply := s.dispatch(raw)
		if reply.Type == TypeError {
			logger.V(1).Info("rejected message", "error", reply.Error)
		}
		if err := c.send(reply); err != nil {
			logger.Error(err, "write reply")
			return
		}
	}
}

func (s *Server) dispatch(raw []byte) ServerMessage {
	msg, err := DecodeClientMessage(raw)
	if err != nil {
		return ErrorMessage(err)
	}
	return Handle(s.Session, msg)
}
