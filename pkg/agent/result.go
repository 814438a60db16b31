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

package agent

import (
	"time"

	"github.com/NVIDIA/cluster-query-agent/pkg/oracle"
)

// State is a state of the agent loop.
type State string

const (
	StatePlanning  State = "Planning"
	StateActing    State = "Acting"
	StateObserving State = "Observing"
	StateDone      State = "Done"
	StateFailed    State = "Failed"
)

// Reason explains why a loop terminated.
type Reason string

const (
	ReasonAnswered           Reason = "answered"
	ReasonUnanswerable       Reason = "unanswerable"
	ReasonIterationCeiling   Reason = "iteration_ceiling"
	ReasonCycle              Reason = "cycle_detected"
	ReasonClusterUnavailable Reason = "cluster_unavailable"
	ReasonOracleUnavailable  Reason = "oracle_unavailable"
	ReasonTimeout            Reason = "timeout"
)

// Result is the outcome of one question. Every Result carries an answer,
// the sentinel "unknown" when nothing better could be derived.
type Result struct {
	ID         string        `json:"id" yaml:"id"`
	Question   string        `json:"question" yaml:"question"`
	Answer     string        `json:"answer" yaml:"answer"`
	State      State         `json:"state" yaml:"state"`
	Reason     Reason        `json:"reason" yaml:"reason"`
	Iterations int           `json:"iterations" yaml:"iterations"`
	Transcript []oracle.Step `json:"transcript,omitempty" yaml:"-"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}

// Succeeded reports whether the loop ended in Done.
func (r *Result) Succeeded() bool {
	return r.State == StateDone
}
