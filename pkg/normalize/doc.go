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

// Package normalize turns free-form answers into canonical strings.
//
// Normalize strips controller-generated suffixes from resource names
// ("my-deployment-56c598c8fc-x7g2p" becomes "my-deployment"), renders counts
// as bare integers, maps statuses onto the literal Kubernetes vocabulary
// ("crashloopbackoff" becomes "CrashLoopBackOff"), and removes surrounding
// quotes, backticks and trailing periods. StatefulSet ordinals are kept.
package normalize
