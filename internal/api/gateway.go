package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tmattson/flix/internal/session"
	"github.com/tmattson/flix/internal/shared"
)

// Gateway issues requests against the myFlix backend: it resolves endpoint
// paths against the configured base URL, attaches the stored bearer token to
// authenticated calls, and normalizes every failure into [*Error].
//
// The base URL may be the remote origin itself or a local relay prefix
// (see internal/proxy); the gateway does not care which.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
	logger     *log.Logger
}

// NewGateway creates a Gateway. client defaults to [http.DefaultClient] and
// logger to a stderr logger; the gateway imposes no timeout of its own.
func NewGateway(baseURL string, client *http.Client, store session.Store, logger *log.Logger) *Gateway {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		store:      store,
		logger:     logger,
	}
}

// Do performs one request and returns the raw 2xx body (an empty body
// becomes "{}"). authed controls bearer-token attachment: when true and a
// session is stored, the token is sent; when no session exists the header is
// omitted entirely and the server's rejection stands.
//
// A 401 or 403 on an authed call clears the session store before the error
// is returned; this is the single recovery point for expired sessions.
// The gateway never retries.
func (g *Gateway) Do(ctx context.Context, method, path string, body any, authed bool) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	url := g.baseURL + "/" + strings.TrimLeft(path, "/")

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := shared.GenerateID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authed {
		if sess, ok, err := g.store.Load(); err != nil {
			return nil, fmt.Errorf("failed to load session: %w", err)
		} else if ok && sess.Token != "" {
			req.Header.Set("Authorization", "Bearer "+sess.Token)
		}
	}

	g.logger.Debug("dispatching request", "method", method, "path", path, "request_id", requestID)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Debug("transport failure", "request_id", requestID, "error", err)
		return nil, newError(0, "", authed)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if authed && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			if err := g.store.Clear(); err != nil {
				g.logger.Error("failed to clear rejected session", "error", err)
			}
		}
		g.logger.Debug("request rejected", "request_id", requestID, "status", resp.StatusCode)
		return nil, newError(resp.StatusCode, strings.TrimSpace(string(respBody)), authed)
	}

	if len(respBody) == 0 {
		return json.RawMessage(`{}`), nil
	}

	return json.RawMessage(respBody), nil
}
