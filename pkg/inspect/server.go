package inspect

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/vela/pkg/dom"
	"github.com/vango-dev/vela/pkg/vela"
)

// DefaultEventBuffer is the per-connection event queue length.
const DefaultEventBuffer = 256

// Executor runs fn on the goroutine that owns the runtime.
// *host.Loop implements it.
type Executor interface {
	Submit(fn func()) error
}

type inline struct{}

func (inline) Submit(fn func()) error {
	fn()
	return nil
}

// Option configures a Server.
type Option func(*Server)

// WithExecutor sets the executor used to read the DOM. The default runs
// reads on the request goroutine, which is only safe with a Manual host
// driven from that same goroutine.
func WithExecutor(e Executor) Option {
	return func(s *Server) {
		if e != nil {
			s.exec = e
		}
	}
}

// WithGatherer sets the metrics source. Defaults to
// prometheus.DefaultGatherer.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		if g != nil {
			s.gatherer = g
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEventBuffer sets the per-connection event queue length.
func WithEventBuffer(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.buffer = n
		}
	}
}

// Server is the inspector HTTP server.
type Server struct {
	rt       *vela.Runtime
	root     *dom.Node
	exec     Executor
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	buffer   int
	upgrader websocket.Upgrader
	router   chi.Router

	dropped atomic.Int64
	clients atomic.Int64
}

// New creates an inspector for rt that snapshots the DOM under root.
func New(rt *vela.Runtime, root *dom.Node, opts ...Option) *Server {
	s := &Server{
		rt:       rt,
		root:     root,
		exec:     inline{},
		gatherer: prometheus.DefaultGatherer,
		logger:   slog.Default(),
		buffer:   DefaultEventBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // local debugging tool
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get("/snapshot", s.handleSnapshot)
	r.Get("/events", s.handleEvents)
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Dropped returns how many events were discarded because a client's
// queue was full.
func (s *Server) Dropped() int64 { return s.dropped.Load() }

// Clients returns the number of connected event streams.
func (s *Server) Clients() int64 { return s.clients.Load() }

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("inspector listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	type result struct {
		html []byte
		err  error
	}
	done := make(chan result, 1)
	err := s.exec.Submit(func() {
		var buf bytes.Buffer
		err := dom.Render(&buf, s.root)
		done <- result{buf.Bytes(), err}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	select {
	case res := <-done:
		if res.err != nil {
			http.Error(w, res.err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(res.html)
	case <-r.Context().Done():
	}
}

// subscribe returns a bounded queue of runtime events. Events that do
// not fit are counted and dropped.
func (s *Server) subscribe() (<-chan vela.Event, func()) {
	events := make(chan vela.Event, s.buffer)
	unsubscribe := s.rt.Subscribe(func(e vela.Event) {
		select {
		case events <- e:
		default:
			s.dropped.Add(1)
		}
	})
	return events, unsubscribe
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	// Subscribe before the handshake completes so a client never misses
	// events emitted right after it connects.
	events, unsubscribe := s.subscribe()
	defer unsubscribe()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("inspector upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	s.clients.Add(1)
	defer s.clients.Add(-1)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case e := <-events:
			if err := conn.WriteJSON(e); err != nil {
				s.logger.Debug("inspector write failed", "error", err)
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
