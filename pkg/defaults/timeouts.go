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

package defaults

import "time"

// Agent loop bounds and timeouts.
const (
	// QuestionTimeout is the default end-to-end budget for answering one question.
	QuestionTimeout = 60 * time.Second

	// MaxIterations is the default ceiling on plan-act-observe cycles per question.
	MaxIterations = 8

	// OracleCallTimeout bounds a single reasoning oracle round trip.
	// Must be less than QuestionTimeout so a slow model cannot consume the whole budget.
	OracleCallTimeout = 30 * time.Second

	// OracleRetries is the number of additional attempts on oracle transport failure.
	OracleRetries = 1

	// UnknownAnswer is returned when no answer could be derived.
	UnknownAnswer = "unknown"
)

// Cluster timeouts for K8s API operations.
const (
	// K8sCallTimeout bounds a single read against the API server.
	K8sCallTimeout = 10 * time.Second

	// K8sRetryAttempts is the number of attempts for retryable cluster failures.
	K8sRetryAttempts = 3

	// K8sRetryBaseDelay is the initial backoff between retry attempts.
	K8sRetryBaseDelay = 200 * time.Millisecond

	// K8sRetryFactor multiplies the backoff after each attempt.
	K8sRetryFactor = 2.0

	// K8sClientQPS and K8sClientBurst throttle the shared clientset.
	K8sClientQPS   = 50
	K8sClientBurst = 100
)

// Tool result limits.
const (
	// ObservationMaxBytes caps the text of a single observation fed back to the oracle.
	ObservationMaxBytes = 16 * 1024

	// LogTailLines is the default number of log lines fetched when the caller gives none.
	LogTailLines int64 = 100

	// LogMaxTailLines is the upper bound accepted for tail_lines.
	LogMaxTailLines int64 = 5000
)

// Handler limits for HTTP request processing.
const (
	// QueryHandlerTimeout is the timeout for /query-agent requests.
	// Slightly longer than QuestionTimeout so the loop can still render a best-effort answer.
	QueryHandlerTimeout = QuestionTimeout + 5*time.Second

	// QueryMaxBodyBytes limits the size of an inbound question payload.
	QueryMaxBodyBytes = 64 * 1024
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	// Must cover QueryHandlerTimeout, questions are answered synchronously.
	ServerWriteTimeout = 90 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
)

// CLI timeouts for command-line operations.
const (
	// CLIAskTimeout is the default timeout for the ask command.
	CLIAskTimeout = 2 * time.Minute
)
