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

// Package query exposes the agent over HTTP.
//
// Endpoints:
//
//	POST /query-agent  answer one natural language question about the cluster
//	GET  /v1/tools     list the tool catalog offered to the oracle
//
// A question always yields HTTP 200 once the agent loop has run, even when
// the answer is the sentinel "unknown". Only malformed requests are rejected:
//
//	curl -X POST http://localhost:8000/query-agent \
//	  -H "Content-Type: application/json" \
//	  -d '{"question": "How many nodes are in the cluster?"}'
//
//	{"question":"How many nodes are in the cluster?","answer":"2"}
//
// Adding ?verbose=true includes the loop's terminal state, reason and
// iteration count. The same values are always sent as X-Agent-State,
// X-Agent-Reason and X-Agent-Iterations response headers.
package query
