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

// Package oracle defines the reasoning oracle consulted by the agent loop and
// an implementation backed by an OpenAI-compatible chat completions API
// (github.com/openai/openai-go/v3).
//
// The contract is a single call, Decide, which sees the question, the tool
// catalog and the transcript so far and returns exactly one Decision: a tool
// call or a final answer. Implementations keep no per-question state.
package oracle
