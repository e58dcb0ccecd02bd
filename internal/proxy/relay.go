package proxy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tmattson/flix/internal/shared"
	"golang.org/x/time/rate"
)

// Relay forwards /api/* requests to the fixed remote origin, stripping the
// prefix. It exists purely so a browser bundle served from localhost can
// reach the backend without tripping cross-origin restrictions; it never
// inspects payloads.
type Relay struct {
	target  *url.URL
	proxy   *httputil.ReverseProxy
	limiter *rate.Limiter
	logger  *log.Logger
}

// NewRelay creates a [Relay] pointed at the target origin. ratePerSec <= 0
// disables rate limiting.
func NewRelay(target string, ratePerSec int, logger *log.Logger) (*Relay, error) {
	targetURL, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("failed to parse target origin: %w", err)
	}
	if targetURL.Scheme == "" || targetURL.Host == "" {
		return nil, fmt.Errorf("%w: target must be an absolute origin, got %q", shared.ErrInvalidConfig, target)
	}

	r := &Relay{target: targetURL, logger: logger}

	if ratePerSec > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec)
	}

	r.proxy = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL.Scheme = targetURL.Scheme
			pr.Out.URL.Host = targetURL.Host
			pr.Out.Host = targetURL.Host
			pr.Out.Header.Set("Accept", "application/json")
		},
		ErrorHandler: func(w http.ResponseWriter, req *http.Request, err error) {
			logger.Error("relay error", "method", req.Method, "path", req.URL.Path, "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(map[string]string{"error": "proxy error", "details": err.Error()})
		},
	}

	return r, nil
}

// Routes returns the HTTP routes this handler serves.
func (r *Relay) Routes() []string {
	return []string{"/api/"}
}

// ServeHTTP forwards the request upstream with the /api prefix removed.
func (r *Relay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.limiter != nil && !r.limiter.Allow() {
		http.Error(w, "Too many requests", http.StatusTooManyRequests)
		return
	}

	req = req.Clone(req.Context())
	req.URL.Path = strings.TrimPrefix(req.URL.Path, "/api")
	if req.URL.Path == "" {
		req.URL.Path = "/"
	}

	r.proxy.ServeHTTP(w, req)
}

// HealthHandler answers /health with the relay's status and target.
type HealthHandler struct {
	target string
}

// NewHealthHandler creates a [HealthHandler] reporting the given target.
func NewHealthHandler(target string) *HealthHandler {
	return &HealthHandler{target: target}
}

func (h *HealthHandler) Routes() []string {
	return []string{"/health"}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "proxy server is running",
		"target": h.target,
	})
}

// Server assembles the relay, health, and static handlers behind a
// [BasicRouter] with CORS and request logging applied router-wide.
type Server struct {
	cfg    shared.ProxyConfig
	router *BasicRouter
	logger *log.Logger
	http   *http.Server
}

// NewServer builds the relay server from configuration.
func NewServer(cfg shared.ProxyConfig, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	relay, err := NewRelay(cfg.Target, cfg.RateLimit, logger)
	if err != nil {
		return nil, err
	}

	router := NewBasicRouter()
	router.Use(RequestLogger(logger), CORS(cfg.AllowedOrigin))
	router.Handler(relay)
	router.Handler(NewHealthHandler(cfg.Target))

	if cfg.StaticDir != "" {
		router.Handler(NewStaticHandler(cfg.StaticDir))
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	return &Server{
		cfg:    cfg,
		router: router,
		logger: logger,
		http:   &http.Server{Addr: addr, Handler: router},
	}, nil
}

// Router exposes the assembled handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("relay listening",
			"addr", s.http.Addr,
			"target", s.cfg.Target,
			"allowed_origin", s.cfg.AllowedOrigin,
		)
		errChan <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("relay server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}
