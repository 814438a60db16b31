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

package cluster

// ListOptions selects resources for ListResources.
type ListOptions struct {
	Kind          string
	Namespace     string
	AllNamespaces bool
	LabelSelector string
}

// LogOptions selects a log excerpt for GetLogs.
type LogOptions struct {
	Pod       string
	Namespace string
	Container string
	// TailLines defaults to defaults.LogTailLines when zero.
	TailLines int64
	Previous  bool
}

// OwnerRef identifies a controlling resource.
type OwnerRef struct {
	Kind      Kind   `json:"kind" yaml:"kind"`
	Name      string `json:"name" yaml:"name"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// ResourceSummary is the compact projection returned by listings.
type ResourceSummary struct {
	Kind      Kind              `json:"kind" yaml:"kind"`
	Name      string            `json:"name" yaml:"name"`
	Namespace string            `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Status    string            `json:"status,omitempty" yaml:"status,omitempty"`
	Reason    string            `json:"reason,omitempty" yaml:"reason,omitempty"`
	Message   string            `json:"message,omitempty" yaml:"message,omitempty"`
	Labels    map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Ready     string            `json:"ready,omitempty" yaml:"ready,omitempty"`
	Restarts  int32             `json:"restarts,omitempty" yaml:"restarts,omitempty"`
	Age       string            `json:"age,omitempty" yaml:"age,omitempty"`
	Owner     *OwnerRef         `json:"owner,omitempty" yaml:"owner,omitempty"`
}

// ResourceDetail extends the summary with spec and status projections.
type ResourceDetail struct {
	ResourceSummary `json:",inline" yaml:",inline"`

	Spec         map[string]any `json:"spec,omitempty" yaml:"spec,omitempty"`
	StatusDetail map[string]any `json:"statusDetail,omitempty" yaml:"statusDetail,omitempty"`
}
