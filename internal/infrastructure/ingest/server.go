package ingest

import (
	"errors"
	"io"
	"net"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/reeflab/reef/internal/domain/entity"
	apperrors "github.com/reeflab/reef/pkg/errors"
	"github.com/reeflab/reef/pkg/safego"
)

// acceptPollInterval bounds how long the accept loop can sit in Accept
// before re-checking the stop flag.
const acceptPollInterval = 500 * time.Millisecond

// Server listens on a unix stream socket and feeds decoded events into a
// bounded queue. Clients connect, write newline-delimited records, and
// close; nothing is ever written back.
type Server struct {
	sockPath string
	queue    *Queue
	logger   *zap.Logger

	mu       sync.Mutex
	listener *net.UnixListener
	stopped  atomic.Bool
}

// NewServer builds a server around an existing queue so that in-process
// producers (the demo director) share the same event path.
func NewServer(sockPath string, queue *Queue, logger *zap.Logger) *Server {
	return &Server{
		sockPath: sockPath,
		queue:    queue,
		logger:   logger.With(zap.String("component", "ingest"), zap.String("sock", sockPath)),
	}
}

// Queue returns the server's event queue.
func (s *Server) Queue() *Queue { return s.queue }

// Enqueue feeds one in-process event into the shared queue.
func (s *Server) Enqueue(ev entity.Event) { s.queue.Enqueue(ev) }

// Drain empties the queue; see Queue.Drain.
func (s *Server) Drain() []entity.Event { return s.queue.Drain() }

// Start binds the socket and launches the accept loop. A stale socket file
// from a crashed run is removed and recreated. Start returns only after the
// listener is accepting, so a hook fired immediately afterwards will connect.
func (s *Server) Start() error {
	if err := removeIfExists(s.sockPath); err != nil {
		return apperrors.NewBindFailedError("cannot clear stale socket", err)
	}
	addr, err := net.ResolveUnixAddr("unix", s.sockPath)
	if err != nil {
		return apperrors.NewBindFailedError("bad socket path", err)
	}
	ln, err := net.ListenUnix("unix", addr)
	if err != nil {
		return apperrors.NewBindFailedError("cannot bind socket", err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	s.stopped.Store(false)

	safego.Go(s.logger, "ingest-accept", s.acceptLoop)
	s.logger.Info("Listening for hook events")
	return nil
}

// Stop halts accepting, closes the listener and removes the socket file.
// Idempotent, and safe to call after a failed Start.
func (s *Server) Stop() {
	s.stopped.Store(true)

	s.mu.Lock()
	ln := s.listener
	s.listener = nil
	s.mu.Unlock()

	if ln != nil {
		_ = ln.Close()
	}
	if err := removeIfExists(s.sockPath); err != nil {
		s.logger.Warn("Could not remove socket file", zap.Error(err))
	}
}

// acceptLoop accepts connections until stopped. Each lap sets a short
// deadline so a stop request is observed within one polling interval.
// Transient accept errors retry; anything else ends the loop without
// touching the rest of the process.
func (s *Server) acceptLoop() {
	for {
		s.mu.Lock()
		ln := s.listener
		s.mu.Unlock()
		if ln == nil || s.stopped.Load() {
			return
		}

		_ = ln.SetDeadline(time.Now().Add(acceptPollInterval))
		conn, err := ln.Accept()
		if err != nil {
			if s.stopped.Load() || errors.Is(err, net.ErrClosed) {
				return
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			s.logger.Warn("Accept failed", zap.Error(err))
			return
		}
		safego.Go(s.logger, "ingest-conn", func() { s.handleConn(conn) })
	}
}

// handleConn reads one connection to EOF and enqueues every well-formed
// line. A broken transfer just means fewer lines; a trailing fragment with
// no terminator is dropped, not parsed. Decode failures are silent; bad
// telemetry is noise, not an error.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	raw, err := io.ReadAll(conn)
	if err != nil && len(raw) == 0 {
		return
	}

	payload := string(raw)
	lines := strings.Split(payload, "\n")
	// The element after the last "\n" is either empty (terminated stream)
	// or an unterminated fragment; skip it either way.
	for _, line := range lines[:len(lines)-1] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ev, err := entity.DecodeLine([]byte(line))
		if err != nil {
			continue
		}
		s.queue.Enqueue(ev)
	}
}

func removeIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
