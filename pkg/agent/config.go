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

	"github.com/NVIDIA/cluster-query-agent/pkg/defaults"
)

// Config bounds the agent loop.
type Config struct {
	// MaxIterations is the ceiling on oracle decisions per question.
	MaxIterations int `yaml:"maxIterations,omitempty"`
	// QuestionTimeout bounds a whole question.
	QuestionTimeout time.Duration `yaml:"questionTimeout,omitempty"`
	// OracleRetries is the number of extra attempts after an oracle transport failure.
	OracleRetries int `yaml:"oracleRetries,omitempty"`
	// ResolveWorkloads prefers the owning workload's name for generated pod names.
	ResolveWorkloads bool `yaml:"resolveWorkloads"`
}

// DefaultConfig returns the default loop bounds.
func DefaultConfig() Config {
	return Config{
		MaxIterations:    defaults.MaxIterations,
		QuestionTimeout:  defaults.QuestionTimeout,
		OracleRetries:    defaults.OracleRetries,
		ResolveWorkloads: true,
	}
}

// Option configures an Agent.
type Option func(*Agent)

// WithConfig replaces the whole configuration; zero fields keep their defaults.
func WithConfig(cfg Config) Option {
	return func(a *Agent) {
		if cfg.MaxIterations > 0 {
			a.cfg.MaxIterations = cfg.MaxIterations
		}
		if cfg.QuestionTimeout > 0 {
			a.cfg.QuestionTimeout = cfg.QuestionTimeout
		}
		if cfg.OracleRetries >= 0 {
			a.cfg.OracleRetries = cfg.OracleRetries
		}
		a.cfg.ResolveWorkloads = cfg.ResolveWorkloads
	}
}

// WithMaxIterations sets the iteration ceiling.
func WithMaxIterations(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.cfg.MaxIterations = n
		}
	}
}

// WithQuestionTimeout sets the per-question timeout.
func WithQuestionTimeout(d time.Duration) Option {
	return func(a *Agent) {
		if d > 0 {
			a.cfg.QuestionTimeout = d
		}
	}
}

// WithOracleRetries sets the number of extra oracle attempts.
func WithOracleRetries(n int) Option {
	return func(a *Agent) {
		if n >= 0 {
			a.cfg.OracleRetries = n
		}
	}
}

// WithWorkloadResolution toggles owner-based name resolution.
func WithWorkloadResolution(enabled bool) Option {
	return func(a *Agent) {
		a.cfg.ResolveWorkloads = enabled
	}
}
