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

package header

import "fmt"

// APIVersion is the current document schema version.
const APIVersion = "cqa.nvidia.com/v1alpha1"

// Kind represents the type of a cqa document.
type Kind string

// Valid Kind constants.
const (
	KindSettings Kind = "AgentSettings"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindSettings:
		return true
	default:
		return false
	}
}

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata returns an Option that adds a metadata key-value pair.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithAPIVersion overrides the API version.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// New creates a Header of the given kind at the current API version.
func New(kind Kind, opts ...Option) Header {
	h := Header{
		Kind:       kind,
		APIVersion: APIVersion,
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// Header carries a document's kind, schema version and free-form metadata.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Validate checks that a present kind and apiVersion match expectations.
// Empty fields are accepted.
func (h Header) Validate(expected Kind) error {
	if h.Kind != "" && h.Kind != expected {
		return fmt.Errorf("invalid kind %q, expected %q", h.Kind, expected)
	}
	if h.APIVersion != "" && h.APIVersion != APIVersion {
		return fmt.Errorf("invalid apiVersion %q, expected %q", h.APIVersion, APIVersion)
	}
	return nil
}
