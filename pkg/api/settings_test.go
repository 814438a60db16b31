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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/cluster-query-agent/pkg/agent"
	"github.com/NVIDIA/cluster-query-agent/pkg/defaults"
	"github.com/NVIDIA/cluster-query-agent/pkg/oracle"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, agent.DefaultConfig(), s.Agent)
	assert.Equal(t, oracle.DefaultModel, s.Oracle.Model)
	assert.Equal(t, defaults.OracleCallTimeout, s.Oracle.Timeout)
	assert.Equal(t, defaults.K8sCallTimeout, s.Cluster.CallTimeout)
	assert.Equal(t, defaults.ObservationMaxBytes, s.Tools.ObservationMaxBytes)
	assert.False(t, s.Server.CheckCluster)
}

func TestLoadSettings_FileOverlaysDefaults(t *testing.T) {
	t.Setenv(EnvOpenAIKey, "")
	t.Setenv(EnvOpenAIBaseURL, "")
	t.Setenv(EnvModel, "")

	path := filepath.Join(t.TempDir(), "cqa.yaml")
	doc := `
kind: AgentSettings
apiVersion: cqa.nvidia.com/v1alpha1
server:
  port: 9000
  checkCluster: true
agent:
  maxIterations: 4
  questionTimeout: 45s
oracle:
  model: gpt-4o-mini
  apiKey: ignored
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	s, err := LoadSettings(path, "/tmp/kubeconfig")
	require.NoError(t, err)

	assert.Equal(t, 9000, s.Server.Port)
	assert.True(t, s.Server.CheckCluster)
	assert.Equal(t, 4, s.Agent.MaxIterations)
	assert.Equal(t, 45*time.Second, s.Agent.QuestionTimeout)
	assert.Equal(t, defaults.OracleRetries, s.Agent.OracleRetries, "omitted fields keep defaults")
	assert.True(t, s.Agent.ResolveWorkloads, "omitted fields keep defaults")
	assert.Equal(t, "gpt-4o-mini", s.Oracle.Model)
	assert.Empty(t, s.Oracle.APIKey, "api keys are never read from documents")
	assert.Equal(t, "/tmp/kubeconfig", s.Kubeconfig)
}

func TestLoadSettings_NoFile(t *testing.T) {
	t.Setenv(EnvOpenAIKey, "sk-test")
	t.Setenv(EnvOpenAIBaseURL, "")
	t.Setenv(EnvModel, "")

	s, err := LoadSettings("", "")
	require.NoError(t, err)
	assert.Equal(t, "sk-test", s.Oracle.APIKey)
	assert.Equal(t, oracle.DefaultModel, s.Oracle.Model)
}

func TestLoadSettings_WrongKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kind: Snapshot\n"), 0o600))

	_, err := LoadSettings(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid kind")
}

func TestLoadSettings_MissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"), "")
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvOpenAIKey:     " sk-abc ",
		EnvOpenAIBaseURL: "http://localhost:11434/v1",
		EnvModel:         "llama3",
	}
	s := DefaultSettings()
	s.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "sk-abc", s.Oracle.APIKey)
	assert.Equal(t, "http://localhost:11434/v1", s.Oracle.BaseURL)
	assert.Equal(t, "llama3", s.Oracle.Model)

	s.ApplyEnv(func(string) string { return "" })
	assert.Equal(t, "llama3", s.Oracle.Model, "unset variables leave values alone")
}
