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

package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/NVIDIA/cluster-query-agent/pkg/cluster"
	"github.com/NVIDIA/cluster-query-agent/pkg/defaults"
	apperrors "github.com/NVIDIA/cluster-query-agent/pkg/errors"
)

// Cluster is the read-only cluster surface the tools are backed by.
type Cluster interface {
	ListResources(ctx context.Context, opts cluster.ListOptions) ([]cluster.ResourceSummary, error)
	GetResource(ctx context.Context, kind, name, namespace string) (*cluster.ResourceDetail, error)
	GetLogs(ctx context.Context, opts cluster.LogOptions) (string, error)
	GetOwnersOf(ctx context.Context, kind, name, namespace string) ([]cluster.OwnerRef, error)
	ResolveWorkload(ctx context.Context, kind, name, namespace string) (*cluster.OwnerRef, error)
}

type handlerFunc func(ctx context.Context, c Cluster, args map[string]any) (any, error)

// Spec describes one tool offered to the oracle.
type Spec struct {
	Name        string             `json:"name" yaml:"name"`
	Description string             `json:"description" yaml:"description"`
	Parameters  *jsonschema.Schema `json:"parameters" yaml:"-"`
	ReadOnly    bool               `json:"readOnly" yaml:"readOnly"`

	resolved *jsonschema.Resolved
	handler  handlerFunc
}

// Terminal reports whether invoking the tool ends the loop instead of
// reaching the cluster.
func (s *Spec) Terminal() bool {
	return s.handler == nil
}

// Registry holds the immutable tool catalog and dispatches invocations.
// It is safe for concurrent use.
type Registry struct {
	specs    []*Spec
	byName   map[string]*Spec
	cluster  Cluster
	maxBytes int
}

// Option configures a Registry.
type Option func(*Registry)

// WithObservationLimit caps observation text at n bytes.
func WithObservationLimit(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.maxBytes = n
		}
	}
}

// NewRegistry builds the catalog over c and resolves every parameter schema.
func NewRegistry(c Cluster, opts ...Option) (*Registry, error) {
	if c == nil {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "tool registry requires a cluster")
	}

	r := &Registry{
		byName:   make(map[string]*Spec),
		cluster:  c,
		maxBytes: defaults.ObservationMaxBytes,
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, s := range builtinSpecs() {
		if _, dup := r.byName[s.Name]; dup {
			return nil, apperrors.New(apperrors.ErrCodeInternal, fmt.Sprintf("duplicate tool %q", s.Name))
		}
		resolved, err := s.Parameters.Resolve(nil)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInternal, fmt.Sprintf("invalid schema for tool %q", s.Name), err)
		}
		s.resolved = resolved
		r.specs = append(r.specs, s)
		r.byName[s.Name] = s
	}

	return r, nil
}

// Catalog returns the tool specs in registration order.
func (r *Registry) Catalog() []Spec {
	out := make([]Spec, 0, len(r.specs))
	for _, s := range r.specs {
		out = append(out, Spec{
			Name:        s.Name,
			Description: s.Description,
			Parameters:  s.Parameters,
			ReadOnly:    s.ReadOnly,
		})
	}
	return out
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (*Spec, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// Cluster returns the cluster the registry dispatches to.
func (r *Registry) Cluster() Cluster {
	return r.cluster
}

// Validate checks an invocation against the catalog. Failures are
// MALFORMED_INVOCATION. Kind arguments are lower-cased in place first.
func (r *Registry) Validate(inv *Invocation) error {
	s, ok := r.byName[inv.Tool]
	if !ok {
		return apperrors.NewWithContext(apperrors.ErrCodeMalformedInvocation,
			fmt.Sprintf("unknown tool %q", inv.Tool),
			map[string]any{"tools": r.names()})
	}
	if inv.Args == nil {
		inv.Args = map[string]any{}
	}
	if k, ok := inv.Args["kind"].(string); ok {
		inv.Args["kind"] = strings.ToLower(strings.TrimSpace(k))
	}
	if err := s.resolved.Validate(inv.Args); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeMalformedInvocation,
			fmt.Sprintf("invalid arguments for %s: %v", inv.Tool, err), err)
	}
	return nil
}

func (r *Registry) names() []string {
	out := make([]string, 0, len(r.specs))
	for _, s := range r.specs {
		out = append(out, s.Name)
	}
	return out
}
