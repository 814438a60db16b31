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
	"context"
	"log/slog"

	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	apperrors "github.com/NVIDIA/cluster-query-agent/pkg/errors"
)

// maxOwnerDepth bounds the ownership walk in ResolveWorkload.
const maxOwnerDepth = 5

// GetOwnersOf returns the direct owners of a resource, controller first.
func (a *Adapter) GetOwnersOf(ctx context.Context, kind, name, namespace string) ([]OwnerRef, error) {
	_, obj, err := a.get(ctx, kind, name, namespace)
	if err != nil {
		return nil, err
	}
	m, err := meta.Accessor(obj)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to access metadata", err)
	}
	return ownersOf(m), nil
}

func ownersOf(m metav1.Object) []OwnerRef {
	refs := m.GetOwnerReferences()
	out := make([]OwnerRef, 0, len(refs))
	for _, r := range refs {
		ref := OwnerRef{Kind: kindFromOwner(r.Kind), Name: r.Name, Namespace: m.GetNamespace()}
		if r.Controller != nil && *r.Controller {
			out = append([]OwnerRef{ref}, out...)
			continue
		}
		out = append(out, ref)
	}
	return out
}

// ResolveWorkload follows controller references from the named resource up to
// its top-level controller, e.g. pod -> replicaset -> deployment or
// pod -> job -> cronjob. A resource without a controller resolves to itself.
// The walk stops at owners the adapter cannot read.
func (a *Adapter) ResolveWorkload(ctx context.Context, kind, name, namespace string) (*OwnerRef, error) {
	k, obj, err := a.get(ctx, kind, name, namespace)
	if err != nil {
		return nil, err
	}

	m, err := meta.Accessor(obj)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to access metadata", err)
	}
	current := &OwnerRef{Kind: k, Name: m.GetName(), Namespace: m.GetNamespace()}

	for range maxOwnerDepth {
		owner := controllerOf(m)
		if owner == nil {
			return current, nil
		}
		current = owner

		if _, served := handlers[owner.Kind]; !served {
			return current, nil
		}
		_, next, err := a.get(ctx, string(owner.Kind), owner.Name, owner.Namespace)
		if err != nil {
			if apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
				slog.Debug("owner not readable, stopping walk",
					"kind", owner.Kind,
					"name", owner.Name)
				return current, nil
			}
			return nil, err
		}
		if m, err = meta.Accessor(next); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to access metadata", err)
		}
	}
	return current, nil
}
