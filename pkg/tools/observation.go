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

package tools

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"unicode/utf8"

	apperrors "github.com/NVIDIA/cluster-query-agent/pkg/errors"
)

const truncationMarker = "\n...[truncated]"

// Invocation is a single tool call requested by the oracle.
type Invocation struct {
	Tool   string         `json:"tool"`
	Args   map[string]any `json:"args,omitempty"`
	CallID string         `json:"callId,omitempty"`
}

// Key identifies an invocation by tool and arguments, for cycle detection.
// encoding/json sorts map keys, so equal arguments produce equal keys.
func (i Invocation) Key() string {
	b, err := json.Marshal(i.Args)
	if err != nil {
		return i.Tool + "|" + fmt.Sprint(i.Args)
	}
	return i.Tool + "|" + string(b)
}

// ObservationError describes a failed invocation.
type ObservationError struct {
	Code    apperrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
}

// Observation is the result of dispatching an Invocation.
type Observation struct {
	Tool      string            `json:"tool"`
	Args      map[string]any    `json:"args,omitempty"`
	Data      any               `json:"data,omitempty"`
	Text      string            `json:"text"`
	Err       *ObservationError `json:"error,omitempty"`
	Truncated bool              `json:"truncated,omitempty"`
}

// Failed reports whether the invocation produced an error.
func (o Observation) Failed() bool {
	return o.Err != nil
}

// Terminal reports whether the failure should end the loop: the cluster stayed
// unavailable after retries or the question ran out of time.
func (o Observation) Terminal() bool {
	if o.Err == nil {
		return false
	}
	return o.Err.Code == apperrors.ErrCodeUnavailable || o.Err.Code == apperrors.ErrCodeTimeout
}

// ErrorObservation builds the observation for a failed invocation. Invalid
// requests are reported as malformed invocations.
func ErrorObservation(inv Invocation, err error) Observation {
	code := apperrors.CodeOf(err)
	if code == apperrors.ErrCodeInvalidRequest {
		code = apperrors.ErrCodeMalformedInvocation
	}
	msg := err.Error()
	var se *apperrors.StructuredError
	if stderrors.As(err, &se) {
		msg = se.Message
	}
	return Observation{
		Tool: inv.Tool,
		Args: inv.Args,
		Text: fmt.Sprintf("error: %s: %s", code, msg),
		Err:  &ObservationError{Code: code, Message: msg},
	}
}

// render produces the observation text for data: strings verbatim, everything
// else as compact JSON.
func render(data any) (string, error) {
	if s, ok := data.(string); ok {
		return s, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// truncate caps s at max bytes without splitting a UTF-8 sequence.
func truncate(s string, max int) (string, bool) {
	if max <= 0 || len(s) <= max {
		return s, false
	}
	cut := max - len(truncationMarker)
	if cut < 0 {
		cut = 0
	}
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + truncationMarker, true
}
