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

package oracle

import (
	"context"
	"fmt"

	"github.com/NVIDIA/cluster-query-agent/pkg/normalize"
	"github.com/NVIDIA/cluster-query-agent/pkg/tools"
)

// Oracle chooses the next step of the agent loop.
type Oracle interface {
	// Decide returns exactly one Decision for the current transcript.
	// Errors mean the oracle could not be consulted at all.
	Decide(ctx context.Context, req Request) (Decision, error)
}

// Step is one completed tool round trip.
type Step struct {
	Invocation  tools.Invocation  `json:"invocation"`
	Observation tools.Observation `json:"observation"`
}

// Request carries everything the oracle sees for one decision.
type Request struct {
	Question   string
	Tools      []tools.Spec
	Transcript []Step
	// Iteration is 1-based.
	Iteration     int
	MaxIterations int
}

// DecisionKind tags the Decision variant.
type DecisionKind string

const (
	DecisionToolCall    DecisionKind = "tool_call"
	DecisionFinalAnswer DecisionKind = "final_answer"
	// DecisionEmpty marks a response with neither a tool call nor text.
	DecisionEmpty DecisionKind = "empty"
)

// Decision is either a tool call or a final answer.
type Decision struct {
	Kind DecisionKind

	// Call is set for DecisionToolCall, and for a DecisionFinalAnswer that
	// arrived as a final_answer tool call.
	Call tools.Invocation

	// Answer and Shape are set for DecisionFinalAnswer.
	Answer string
	Shape  normalize.Shape
}

// ToolCall builds a tool-call decision.
func ToolCall(name string, args map[string]any, callID string) Decision {
	return Decision{
		Kind: DecisionToolCall,
		Call: tools.Invocation{Tool: name, Args: args, CallID: callID},
	}
}

// FinalAnswer builds a final-answer decision.
func FinalAnswer(text string, shape normalize.Shape) Decision {
	return Decision{Kind: DecisionFinalAnswer, Answer: text, Shape: shape}
}

func (d Decision) String() string {
	switch d.Kind {
	case DecisionToolCall:
		return fmt.Sprintf("call %s", d.Call.Tool)
	case DecisionFinalAnswer:
		return fmt.Sprintf("answer %q (%s)", d.Answer, d.Shape)
	default:
		return string(d.Kind)
	}
}

// FromToolCall converts a raw tool call into a Decision. final_answer calls
// become final answers that keep the raw call so the arguments can be
// checked against the catalog before the loop accepts them.
func FromToolCall(name string, args map[string]any, callID string) Decision {
	if name != tools.FinalAnswer {
		return ToolCall(name, args, callID)
	}
	answer, _ := args["answer"].(string)
	shape, _ := args["shape"].(string)
	d := FinalAnswer(answer, normalize.ParseShape(shape))
	d.Call = tools.Invocation{Tool: name, Args: args, CallID: callID}
	return d
}
