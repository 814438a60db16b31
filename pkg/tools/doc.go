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

// Package tools defines the read-only tool catalog offered to the reasoning
// oracle and dispatches tool invocations to the cluster adapter.
//
// Each tool carries a JSON schema (github.com/google/jsonschema-go) that is
// resolved once at startup and used to validate every invocation. Unknown
// tools, schema violations and bad jq filters come back as observations with
// a MALFORMED_INVOCATION code so the oracle can correct itself; cluster
// failures come back with NOT_FOUND, TIMEOUT or SERVICE_UNAVAILABLE.
//
// The optional "filter" argument is a jq expression evaluated with
// github.com/itchyny/gojq over the JSON form of the result.
//
// final_answer is part of the catalog but is never dispatched: it ends the
// agent loop.
package tools
