// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNew(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{"/test": okHandler}))

	if s.config == nil {
		t.Fatal("expected config to be initialized")
	}
	if s.httpServer == nil {
		t.Error("expected httpServer to be initialized")
	}
	if s.rateLimiter == nil {
		t.Error("expected rateLimiter to be initialized")
	}
	if s.config.Port != DefaultPort {
		t.Errorf("expected default port %d, got %d", DefaultPort, s.config.Port)
	}
	if !strings.HasSuffix(s.Addr(), ":8000") {
		t.Errorf("unexpected address %s", s.Addr())
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := New()

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", w.Header().Get("Content-Type"))
	}

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/health", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
}

func TestReadyEndpoint(t *testing.T) {
	s := New()

	tests := []struct {
		name           string
		ready          bool
		expectedStatus int
	}{
		{name: "ready state", ready: true, expectedStatus: http.StatusOK},
		{name: "not ready state", ready: false, expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.setReady(tt.ready)

			w := httptest.NewRecorder()
			s.handleReady(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestReadyEndpoint_Checks(t *testing.T) {
	healthy := true
	s := New(WithReadinessCheck("cluster", func(*http.Request) error {
		if !healthy {
			return errors.New("apiserver unreachable")
		}
		return nil
	}))
	s.setReady(true)

	w := httptest.NewRecorder()
	s.handleReady(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	healthy = false
	w = httptest.NewRecorder()
	s.handleReady(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Checks["cluster"] != "apiserver unreachable" {
		t.Errorf("unexpected checks: %v", resp.Checks)
	}
}

func TestRateLimiting(t *testing.T) {
	cfg := NewConfig()
	cfg.RateLimit = 1
	cfg.RateLimitBurst = 1
	cfg.Handlers = map[string]http.HandlerFunc{"/test": okHandler}

	s := New(WithConfig(cfg))
	handler := s.Handler()

	w1 := httptest.NewRecorder()
	handler.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/test", nil))
	if w1.Code != http.StatusOK {
		t.Errorf("expected first request to succeed with status 200, got %d", w1.Code)
	}

	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/test", nil))
	if w2.Code != http.StatusTooManyRequests {
		t.Errorf("expected rate limit error with status 429, got %d", w2.Code)
	}
	if w2.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header to be set")
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w2.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error: %v", err)
	}
	if resp.Code != ErrCodeRateLimitExceeded || !resp.Retryable || resp.RequestID == "" {
		t.Errorf("unexpected error response: %+v", resp)
	}
}

func TestSystemEndpointsBypassRateLimit(t *testing.T) {
	cfg := NewConfig()
	cfg.RateLimit = 1
	cfg.RateLimitBurst = 1
	s := New(WithConfig(cfg))

	for range 5 {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected /health to bypass rate limiting, got %d", w.Code)
		}
	}
}

func TestRootHandler(t *testing.T) {
	s := New(WithName("cqad"), WithVersion("1.2.3"),
		WithHandler(map[string]http.HandlerFunc{"/query-agent": okHandler}))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Name    string   `json:"name"`
		Version string   `json:"version"`
		Routes  []string `json:"routes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Name != "cqad" || resp.Version != "1.2.3" {
		t.Errorf("unexpected identity: %+v", resp)
	}
	if len(resp.Routes) == 0 || resp.Routes[0] != "/query-agent" {
		t.Errorf("expected /query-agent route first, got %v", resp.Routes)
	}
}

func TestUnknownRoute(t *testing.T) {
	s := New()

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{"/test": okHandler}))

	s.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "cqa_http_requests_total") {
		t.Error("expected cqa_http_requests_total in metrics output")
	}
}

func TestPanicRecovery(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{
		"/panic": func(http.ResponseWriter, *http.Request) { panic("test panic") },
	}))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d after panic recovery, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestGracefulShutdown(t *testing.T) {
	cfg := NewConfig()
	cfg.ShutdownTimeout = 100 * time.Millisecond
	cfg.Handlers = map[string]http.HandlerFunc{"/test": okHandler}
	s := New(WithConfig(cfg))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Serve(ctx, ln)
	}()

	deadline := time.Now().Add(time.Second)
	for !s.isReady() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	cancel()

	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("expected clean shutdown, got error: %v", err)
		}
	case <-time.After(time.Second):
		t.Error("shutdown timed out")
	}
	if s.isReady() {
		t.Error("expected server to be not ready after shutdown")
	}
}

func TestWithOptions(t *testing.T) {
	cfg := NewConfig()
	cfg.Name = "test-server"
	cfg.RateLimit = 500

	s := New(WithConfig(cfg), WithPort(9090),
		WithHandler(map[string]http.HandlerFunc{"/a": okHandler}),
		WithHandler(map[string]http.HandlerFunc{"/b": okHandler}))

	if s.config.Name != "test-server" || s.config.Port != 9090 || s.config.RateLimit != 500 {
		t.Errorf("unexpected config: %+v", s.config)
	}
	if len(s.config.Handlers) != 2 {
		t.Errorf("expected handlers to accumulate, got %d", len(s.config.Handlers))
	}
}

func TestDefaultServerName(t *testing.T) {
	if s := New(); s.config.Name != "server" {
		t.Errorf("expected default name 'server', got %s", s.config.Name)
	}
}
