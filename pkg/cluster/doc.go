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

// Package cluster provides read-only access to Kubernetes resources for the
// query agent.
//
// The Adapter wraps a kubernetes.Interface and exposes four operations:
// ListResources, GetResource, GetLogs and GetOwnersOf, plus ResolveWorkload,
// which walks controller references to the top-level workload (for example
// pod -> replicaset -> deployment).
//
// Kinds are matched case-insensitively by singular, plural or short name
// (po, deploy, rs, sts, ds, cj, svc, no, ns, cm, pvc, pv, ing, sa, ev).
// Secrets are not served.
//
// Every read runs with a per-call timeout and is retried on transient failures
// with bounded exponential backoff (retry.OnError). Failures are classified as
// NOT_FOUND, INVALID_REQUEST, TIMEOUT or SERVICE_UNAVAILABLE structured errors.
package cluster
