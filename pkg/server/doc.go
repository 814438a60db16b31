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

// Package server provides the HTTP server that hosts the query agent API.
//
// The server is stateless. Application routes are supplied by the caller and
// wrapped in a middleware chain:
//
//   - Prometheus request metrics (cqa_http_*)
//   - API version negotiation via application/vnd.nvidia.cqa.v1+json
//   - Request ID propagation (X-Request-Id), generated when absent or unsafe
//   - Panic recovery
//   - Token bucket rate limiting (golang.org/x/time/rate)
//   - Structured request logging
//
// System endpoints bypass the chain:
//
//	GET /         server identity and route listing
//	GET /health   liveness probe, always 200 while the process serves
//	GET /ready    readiness probe, 503 until started and every check passes
//	GET /metrics  Prometheus metrics
//
// # Usage
//
//	s := server.New(
//	    server.WithName("cqad"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/query-agent": handler.Query,
//	    }),
//	    server.WithReadinessCheck("cluster", clusterCheck),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Configuration
//
// Defaults come from NewConfig and may be overridden by environment:
//
//	PORT                      listen port (default 8000)
//	RATE_LIMIT                requests per second (default 20)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown budget (default 30)
//
// Errors are written as ErrorResponse with a stable code, the request ID and
// a retryable hint.
package server
