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

// Package header provides the Kubernetes-style envelope for cqa documents.
//
// Documents such as the settings file may carry a kind and apiVersion:
//
//	kind: AgentSettings
//	apiVersion: cqa.nvidia.com/v1alpha1
//	metadata:
//	  owner: platform-team
//
// Both fields are optional. When present they must match what the reader
// expects, so a document of the wrong kind fails fast instead of silently
// decoding to defaults.
package header
