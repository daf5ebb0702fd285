// Package profiler serves the net/http/pprof handlers on a local port while
// the editor runs.
package profiler

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/i2edit/internal/core/logging"
)

// routes are the pprof handlers. Named profiles such as heap are served by
// the index handler.
var routes = map[string]http.HandlerFunc{
	"/debug/pprof/":        pprof.Index,
	"/debug/pprof/cmdline": pprof.Cmdline,
	"/debug/pprof/profile": pprof.Profile,
	"/debug/pprof/symbol":  pprof.Symbol,
	"/debug/pprof/trace":   pprof.Trace,
}

// Server exposes pprof over HTTP on 127.0.0.1.
type Server struct {
	srv  *http.Server
	ln   net.Listener
	port int
	log  zerolog.Logger
}

// New returns a server for port. Port 0 picks a free port on Start.
func New(port int) *Server {
	mux := http.NewServeMux()
	for pattern, h := range routes {
		mux.HandleFunc(pattern, h)
	}

	return &Server{
		srv:  &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		port: port,
		log:  logging.Component("profiler"),
	}
}

// Start binds the port and serves in the background. It returns once the
// listener is open, so a busy port is reported here.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", fmt.Sprintf("127.0.0.1:%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.ln = ln
	s.log.Info().Str("addr", s.Addr()).Msg("profiler listening")

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("profiler stopped")
		}
	}()
	return nil
}

// Addr is the bound host:port, or empty before Start.
func (s *Server) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Debug().Msg("profiler shutting down")
	return s.srv.Shutdown(ctx)
}
