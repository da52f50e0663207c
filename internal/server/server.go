package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songtable/internal/shared"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// UploadPaths are the routes that accept CSV uploads; they share the upload rate limit and size cap.
var UploadPaths = []string{"/api/songs/upload", "/upload"}

const shutdownTimeout = 10 * time.Second

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the song service.
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// New creates a [BasicRouter] with the middleware stack configured from cfg.
func New(cfg shared.ServerConfig, logger *log.Logger) *BasicRouter {
	r := NewBasicRouter()
	r.Use(
		Recover(logger),
		RequestLogger(logger),
		SecurityHeaders(),
		CORS(cfg.CORSOrigins),
	)

	if cfg.UploadRate > 0 {
		burst := max(cfg.UploadBurst, 1)
		r.Use(RateLimit(rate.NewLimiter(rate.Limit(cfg.UploadRate), burst), UploadPaths...))
	}
	if cfg.MaxUploadBytes > 0 {
		r.Use(MaxBytes(cfg.MaxUploadBytes))
	}

	return r
}

// NewHTTPServer creates an [http.Server] for handler with the timeouts from cfg.
func NewHTTPServer(cfg shared.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout.Duration,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout.Duration,
		IdleTimeout:       60 * time.Second,
	}
}

// Run serves srv until ctx is cancelled, then shuts it down gracefully.
func Run(ctx context.Context, srv *http.Server, logger *log.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
