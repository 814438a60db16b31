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

// Package oracletest provides deterministic oracles for tests.
package oracletest

import (
	"context"
	"sync"

	"github.com/NVIDIA/cluster-query-agent/pkg/oracle"
)

// Func adapts a function to the oracle.Oracle interface.
type Func func(ctx context.Context, req oracle.Request) (oracle.Decision, error)

// Decide implements oracle.Oracle.
func (f Func) Decide(ctx context.Context, req oracle.Request) (oracle.Decision, error) {
	return f(ctx, req)
}

// Reply is one scripted oracle response.
type Reply struct {
	Decision oracle.Decision
	Err      error
}

// Scripted replays a fixed sequence of replies keyed by the transcript length,
// so the same script serves concurrent questions independently. Once the
// script runs out, the last reply repeats.
type Scripted struct {
	replies []Reply

	mu    sync.Mutex
	calls int
}

// NewScripted returns a Scripted oracle that answers with the given decisions.
func NewScripted(decisions ...oracle.Decision) *Scripted {
	replies := make([]Reply, 0, len(decisions))
	for _, d := range decisions {
		replies = append(replies, Reply{Decision: d})
	}
	return &Scripted{replies: replies}
}

// NewScriptedReplies returns a Scripted oracle that may also fail.
func NewScriptedReplies(replies ...Reply) *Scripted {
	return &Scripted{replies: replies}
}

// Decide implements oracle.Oracle.
func (s *Scripted) Decide(ctx context.Context, req oracle.Request) (oracle.Decision, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return oracle.Decision{}, err
	}
	if len(s.replies) == 0 {
		return oracle.Decision{Kind: oracle.DecisionEmpty}, nil
	}
	i := len(req.Transcript)
	if i >= len(s.replies) {
		i = len(s.replies) - 1
	}
	r := s.replies[i]
	return r.Decision, r.Err
}

// Calls returns how many times Decide was invoked.
func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
