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

package api

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/NVIDIA/cluster-query-agent/pkg/agent"
	"github.com/NVIDIA/cluster-query-agent/pkg/defaults"
	"github.com/NVIDIA/cluster-query-agent/pkg/header"
	"github.com/NVIDIA/cluster-query-agent/pkg/oracle"
	"github.com/NVIDIA/cluster-query-agent/pkg/serializer"
)

// Environment variables read by LoadSettings.
const (
	EnvConfig        = "CQA_CONFIG"
	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
	EnvModel         = "CQA_MODEL"
)

// Settings configures the agent stack.
type Settings struct {
	header.Header `yaml:",inline"`

	Kubeconfig string          `yaml:"kubeconfig,omitempty"`
	Server     ServerSettings  `yaml:"server"`
	Cluster    ClusterSettings `yaml:"cluster"`
	Tools      ToolSettings    `yaml:"tools"`
	Agent      agent.Config    `yaml:"agent"`
	Oracle     oracle.Config   `yaml:"oracle"`
}

// ServerSettings configures the HTTP daemon.
type ServerSettings struct {
	// Port overrides PORT when set.
	Port int `yaml:"port,omitempty"`
	// CheckCluster gates /ready on the API server answering.
	CheckCluster bool `yaml:"checkCluster,omitempty"`
}

// ClusterSettings configures the resource adapter.
type ClusterSettings struct {
	CallTimeout time.Duration `yaml:"callTimeout,omitempty"`
}

// ToolSettings configures the tool registry.
type ToolSettings struct {
	ObservationMaxBytes int `yaml:"observationMaxBytes,omitempty"`
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Header:  header.New(header.KindSettings),
		Cluster: ClusterSettings{CallTimeout: defaults.K8sCallTimeout},
		Tools:   ToolSettings{ObservationMaxBytes: defaults.ObservationMaxBytes},
		Agent:   agent.DefaultConfig(),
		Oracle: oracle.Config{
			Model:       oracle.DefaultModel,
			Temperature: oracle.DefaultTemperature,
			Timeout:     defaults.OracleCallTimeout,
		},
	}
}

// LoadSettings overlays the document at path, when given, on the defaults
// and then applies the environment.
func LoadSettings(path, kubeconfig string) (*Settings, error) {
	s := DefaultSettings()
	if path = strings.TrimSpace(path); path != "" {
		if err := serializer.FromFileInto(path, kubeconfig, &s); err != nil {
			return nil, fmt.Errorf("failed to load settings from %q: %w", path, err)
		}
		if err := s.Validate(header.KindSettings); err != nil {
			return nil, fmt.Errorf("invalid settings document %q: %w", path, err)
		}
	}
	if kubeconfig != "" {
		s.Kubeconfig = kubeconfig
	}
	s.ApplyEnv(os.Getenv)
	return &s, nil
}

// ApplyEnv overrides settings from the environment. Unset variables leave
// the current values alone.
func (s *Settings) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvOpenAIKey)); v != "" {
		s.Oracle.APIKey = v
	}
	if v := strings.TrimSpace(getenv(EnvOpenAIBaseURL)); v != "" {
		s.Oracle.BaseURL = v
	}
	if v := strings.TrimSpace(getenv(EnvModel)); v != "" {
		s.Oracle.Model = v
	}
}
