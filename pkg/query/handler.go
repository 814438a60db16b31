package query

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/NVIDIA/cluster-query-agent/pkg/agent"
	"github.com/NVIDIA/cluster-query-agent/pkg/defaults"
	apperrors "github.com/NVIDIA/cluster-query-agent/pkg/errors"
	"github.com/NVIDIA/cluster-query-agent/pkg/serializer"
	"github.com/NVIDIA/cluster-query-agent/pkg/server"
	"github.com/NVIDIA/cluster-query-agent/pkg/tools"
)

// Asker answers questions. *agent.Agent implements it.
type Asker interface {
	Ask(ctx context.Context, question string) (*agent.Result, error)
	Tools() []tools.Spec
}

// Handler serves the query endpoints.
type Handler struct {
	asker   Asker
	timeout time.Duration
	maxBody int64
}

// Option configures a Handler.
type Option func(*Handler)

// WithTimeout bounds each request. It should exceed the agent's question
// timeout so a timed-out loop can still report its best-effort answer.
func WithTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithMaxBodyBytes limits the request body size.
func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBody = n
		}
	}
}

// NewHandler returns a Handler backed by a.
func NewHandler(a Asker, opts ...Option) *Handler {
	h := &Handler{
		asker:   a,
		timeout: defaults.QueryHandlerTimeout,
		maxBody: defaults.QueryMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the handler's routes for server.WithHandler.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/query-agent": h.HandleQuery,
		"/v1/tools":    h.HandleTools,
	}
}

// HandleQuery handles POST /query-agent.
func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, server.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{http.MethodPost},
			})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	body := http.MaxBytesReader(w, r.Body, h.maxBody)
	defer body.Close()

	req, err := ParseRequest(body, r.Header.Get("Content-Type"))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			server.WriteError(w, r, http.StatusRequestEntityTooLarge, server.ErrCodeInvalidRequest,
				"Request body too large", false, map[string]any{"limit": tooLarge.Limit})
			return
		}
		server.WriteError(w, r, http.StatusBadRequest, server.ErrCodeInvalidRequest,
			"Invalid query request", false, map[string]any{"error": err.Error()})
		return
	}

	ctx = agent.WithQuestionID(ctx, server.RequestIDFromContext(ctx))

	res, err := h.asker.Ask(ctx, req.Question)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest) {
			server.WriteError(w, r, http.StatusBadRequest, server.ErrCodeInvalidRequest,
				"Invalid query request", false, map[string]any{"error": err.Error()})
			return
		}
		server.WriteErrorFromErr(w, r, err, "Failed to answer question", nil)
		return
	}

	slog.Debug("question answered",
		"requestID", server.RequestIDFromContext(ctx),
		"state", res.State,
		"reason", res.Reason)

	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Agent-State", string(res.State))
	w.Header().Set("X-Agent-Reason", string(res.Reason))
	w.Header().Set("X-Agent-Iterations", strconv.Itoa(res.Iterations))

	verbose, _ := strconv.ParseBool(r.URL.Query().Get("verbose"))
	serializer.RespondJSON(w, http.StatusOK, NewResponse(res, verbose))
}

// HandleTools handles GET /v1/tools.
func (h *Handler) HandleTools(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		server.WriteError(w, r, http.StatusMethodNotAllowed, server.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{http.MethodGet},
			})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, Catalog{Tools: h.asker.Tools()})
}
