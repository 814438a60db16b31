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

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/NVIDIA/cluster-query-agent/pkg/errors"
)

// Kind is the canonical singular, lower-case name of a supported resource kind.
type Kind string

const (
	KindPod                   Kind = "pod"
	KindDeployment            Kind = "deployment"
	KindReplicaSet            Kind = "replicaset"
	KindStatefulSet           Kind = "statefulset"
	KindDaemonSet             Kind = "daemonset"
	KindJob                   Kind = "job"
	KindCronJob               Kind = "cronjob"
	KindService               Kind = "service"
	KindNode                  Kind = "node"
	KindNamespace             Kind = "namespace"
	KindConfigMap             Kind = "configmap"
	KindPersistentVolumeClaim Kind = "persistentvolumeclaim"
	KindPersistentVolume      Kind = "persistentvolume"
	KindIngress               Kind = "ingress"
	KindServiceAccount        Kind = "serviceaccount"
	KindEvent                 Kind = "event"
)

// aliases maps every accepted spelling to its canonical kind.
var aliases = map[string]Kind{
	"pod": KindPod, "pods": KindPod, "po": KindPod,
	"deployment": KindDeployment, "deployments": KindDeployment, "deploy": KindDeployment,
	"replicaset": KindReplicaSet, "replicasets": KindReplicaSet, "rs": KindReplicaSet,
	"statefulset": KindStatefulSet, "statefulsets": KindStatefulSet, "sts": KindStatefulSet,
	"daemonset": KindDaemonSet, "daemonsets": KindDaemonSet, "ds": KindDaemonSet,
	"job": KindJob, "jobs": KindJob,
	"cronjob": KindCronJob, "cronjobs": KindCronJob, "cj": KindCronJob,
	"service": KindService, "services": KindService, "svc": KindService,
	"node": KindNode, "nodes": KindNode, "no": KindNode,
	"namespace": KindNamespace, "namespaces": KindNamespace, "ns": KindNamespace,
	"configmap": KindConfigMap, "configmaps": KindConfigMap, "cm": KindConfigMap,
	"persistentvolumeclaim": KindPersistentVolumeClaim, "persistentvolumeclaims": KindPersistentVolumeClaim, "pvc": KindPersistentVolumeClaim,
	"persistentvolume": KindPersistentVolume, "persistentvolumes": KindPersistentVolume, "pv": KindPersistentVolume,
	"ingress": KindIngress, "ingresses": KindIngress, "ing": KindIngress,
	"serviceaccount": KindServiceAccount, "serviceaccounts": KindServiceAccount, "sa": KindServiceAccount,
	"event": KindEvent, "events": KindEvent, "ev": KindEvent,
}

// ParseKind resolves a kind name, plural or short alias, case-insensitively.
// Secrets and unknown kinds are rejected with INVALID_REQUEST.
func ParseKind(s string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if k, ok := aliases[key]; ok {
		return k, nil
	}
	return "", apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
		fmt.Sprintf("unsupported resource kind %q", s),
		map[string]any{"kind": s, "supported": Kinds()})
}

// Kinds returns the canonical kinds in sorted order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(handlers))
	for k := range handlers {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// KindNames returns every accepted spelling, sorted. Used as the schema enum.
func KindNames() []string {
	out := make([]string, 0, len(aliases))
	for a := range aliases {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// Namespaced reports whether resources of the kind live in a namespace.
func (k Kind) Namespaced() bool {
	h, ok := handlers[k]
	return ok && h.namespaced
}

// kindFromOwner maps an owner reference Kind (e.g. "ReplicaSet") to a Kind.
// Kinds the adapter does not serve are returned lower-cased.
func kindFromOwner(refKind string) Kind {
	if k, ok := aliases[strings.ToLower(refKind)]; ok {
		return k
	}
	return Kind(strings.ToLower(refKind))
}
