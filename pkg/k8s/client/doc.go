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

// Package client provides the shared Kubernetes client used by the agent.
//
// The client is created once (sync.Once) and reused by every request, so all
// questions share a single connection pool and client-side rate limiter.
//
//	clientset, _, err := client.GetKubeClient()
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//	adapter := cluster.NewAdapter(clientset)
//
// # Configuration Discovery
//
// In order: an explicit --kubeconfig path, the KUBECONFIG environment variable,
// ~/.kube/config, then the in-cluster service account. BuildKubeClient bypasses
// the singleton for explicit paths.
//
// Every rest.Config built here carries the QPS, burst and per-call timeout from
// pkg/defaults and the "cluster-query-agent" user agent.
//
// # Testing
//
// Interface is an alias for kubernetes.Interface, so tests pass
// k8s.io/client-go/kubernetes/fake clientsets wherever a client is expected.
package client
