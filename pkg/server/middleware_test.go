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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

func newTestServer() *Server {
	return &Server{
		config:      NewConfig(),
		rateLimiter: rate.NewLimiter(100, 200),
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name     string
		header   string
		keep     bool
		wantUUID bool
	}{
		{name: "generates when missing", wantUUID: true},
		{name: "keeps uuid", header: "550e8400-e29b-41d4-a716-446655440000", keep: true},
		{name: "keeps opaque token", header: "req-42.trace:7", keep: true},
		{name: "replaces unsafe value", header: "bad id\nwith newline", wantUUID: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured string
			handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
				captured = RequestIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("X-Request-Id", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Header().Get("X-Request-Id") != captured {
				t.Errorf("header %q does not match context %q", rec.Header().Get("X-Request-Id"), captured)
			}
			if tt.keep && captured != tt.header {
				t.Errorf("expected %q to be kept, got %q", tt.header, captured)
			}
			if tt.wantUUID {
				if _, err := uuid.Parse(captured); err != nil {
					t.Errorf("expected generated UUID, got %q", captured)
				}
			}
		})
	}
}

func TestVersionMiddleware(t *testing.T) {
	s := newTestServer()

	var version string
	handler := s.versionMiddleware(func(w http.ResponseWriter, r *http.Request) {
		version = APIVersionFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Accept", "application/vnd.nvidia.cqa.v1+json")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if version != "v1" {
		t.Errorf("expected v1, got %q", version)
	}
	if rec.Header().Get("X-API-Version") != "v1" {
		t.Errorf("expected X-API-Version header, got %q", rec.Header().Get("X-API-Version"))
	}
}

func TestLoggingMiddleware_PassesStatus(t *testing.T) {
	s := newTestServer()

	handler := s.loggingMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("expected status %d, got %d", http.StatusTeapot, rec.Code)
	}
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusInternalServerError)
	if _, err := rw.Write([]byte("ok")); err != nil {
		t.Fatal(err)
	}

	if rw.Status() != http.StatusCreated || rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d/%d", rw.Status(), rec.Code)
	}
	if rw.Unwrap() != rec {
		t.Error("expected Unwrap to return the underlying writer")
	}
}

func TestResponseWriter_ImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	if _, err := rw.Write([]byte("body")); err != nil {
		t.Fatal(err)
	}
	if rw.Status() != http.StatusOK {
		t.Errorf("expected implicit 200, got %d", rw.Status())
	}
}
