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

// Package agent implements the question-answering loop.
//
// For each question the agent consults an oracle, which either selects one
// read-only tool from the catalog or gives a final answer. Tool calls are
// validated and dispatched through the tool registry; their observations are
// appended to the transcript the oracle sees on the next iteration.
//
// The loop moves through Planning, Acting and Observing and terminates in
// Done or Failed. A question fails when:
//   - the iteration ceiling is reached
//   - the oracle repeats the previous tool call with identical arguments
//   - the cluster stays unavailable after retries
//   - the oracle stays unavailable after a retry
//   - the question times out or is cancelled
//   - the oracle gives up ("unknown")
//
// Failed questions still carry an answer derived from the most recent
// successful observation, or "unknown".
//
// Usage:
//
//	a, err := agent.New(o, registry, agent.WithMaxIterations(8))
//	if err != nil {
//	    return err
//	}
//	res, err := a.Ask(ctx, "How many nodes are in the cluster?")
//	fmt.Println(res.Answer) // "2"
package agent
