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
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/NVIDIA/cluster-query-agent/pkg/errors"
	"github.com/NVIDIA/cluster-query-agent/pkg/oracle"
	"github.com/NVIDIA/cluster-query-agent/pkg/tools"
)

// Agent answers natural-language questions about a cluster by alternating
// oracle decisions with read-only tool invocations. An Agent holds no
// per-question state; concurrent calls to Ask are independent.
type Agent struct {
	oracle   oracle.Oracle
	registry *tools.Registry
	cfg      Config
}

// New returns an Agent that consults o and dispatches through r.
func New(o oracle.Oracle, r *tools.Registry, opts ...Option) (*Agent, error) {
	if o == nil {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "agent requires an oracle")
	}
	if r == nil {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "agent requires a tool registry")
	}

	a := &Agent{
		oracle:   o,
		registry: r,
		cfg:      DefaultConfig(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Config returns the effective loop configuration.
func (a *Agent) Config() Config {
	return a.cfg
}

// Tools returns the catalog offered to the oracle.
func (a *Agent) Tools() []tools.Spec {
	return a.registry.Catalog()
}

// Ask runs the agent loop for one question. It only returns an error for an
// empty question; every other failure is reported through the Result, which
// always carries a best-effort answer.
func (a *Agent) Ask(ctx context.Context, question string) (*Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "question must not be empty")
	}

	id := questionIDFrom(ctx)
	if id == "" {
		id = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.QuestionTimeout)
	defer cancel()

	questionsInFlight.Inc()
	defer questionsInFlight.Dec()

	start := time.Now()
	log := slog.With("questionID", id)
	log.Info("question received", "question", question, "maxIterations", a.cfg.MaxIterations)

	r := &run{
		agent:    a,
		log:      log,
		question: question,
		catalog:  a.registry.Catalog(),
		state:    StatePlanning,
	}
	res := r.loop(ctx)
	res.ID = id
	res.Question = question
	res.Duration = time.Since(start)

	questionsTotal.WithLabelValues(string(res.State), string(res.Reason)).Inc()
	questionDuration.Observe(res.Duration.Seconds())
	loopIterations.Observe(float64(res.Iterations))

	log.Info("question finished",
		"state", res.State,
		"reason", res.Reason,
		"answer", res.Answer,
		"iterations", res.Iterations,
		"duration", res.Duration)

	return res, nil
}

// decide consults the oracle, retrying transport failures while the question
// still has time left.
func (a *Agent) decide(ctx context.Context, req oracle.Request, log *slog.Logger) (oracle.Decision, error) {
	var err error
	for attempt := 0; attempt <= a.cfg.OracleRetries; attempt++ {
		start := time.Now()
		var d oracle.Decision
		d, err = a.oracle.Decide(ctx, req)
		oracleDuration.Observe(time.Since(start).Seconds())
		if err == nil {
			oracleRequestsTotal.WithLabelValues("ok").Inc()
			return d, nil
		}
		oracleRequestsTotal.WithLabelValues("error").Inc()
		if ctx.Err() != nil {
			return oracle.Decision{}, err
		}
		log.Warn("oracle request failed", "attempt", attempt+1, "error", err)
	}
	if !apperrors.IsCode(err, apperrors.ErrCodeOracleUnavailable) {
		err = apperrors.Wrap(apperrors.ErrCodeOracleUnavailable, "oracle unavailable", err)
	}
	return oracle.Decision{}, err
}
