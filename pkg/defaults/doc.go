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

// Package defaults provides centralized configuration constants for the query agent.
//
// This package defines timeout values, loop bounds, retry parameters, and other
// configuration defaults used across the codebase. Centralizing these values ensures
// consistency and makes tuning easier.
//
// # Categories
//
//   - Agent: question budget, iteration ceiling, oracle call bounds
//   - Kubernetes: per-call timeout and retry backoff for read operations
//   - Tool results: observation size cap, log tail defaults
//   - HTTP handler and server timeouts
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.QuestionTimeout)
//	defer cancel()
//
// # Guidelines
//
// The question timeout must fit inside the handler timeout, which must fit inside the
// server write timeout; otherwise a slow question would be cut off before its
// best-effort answer is written.
package defaults
