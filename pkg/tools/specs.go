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
	"github.com/google/jsonschema-go/jsonschema"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/cluster-query-agent/pkg/cluster"
	"github.com/NVIDIA/cluster-query-agent/pkg/normalize"
)

// Tool names.
const (
	ListResources = "list_resources"
	GetResource   = "get_resource"
	GetLogs       = "get_logs"
	GetOwners     = "get_owners"
	FinalAnswer   = "final_answer"
)

func enum(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func kindSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: "Resource kind: singular, plural or short name (pod, deploy, svc, ...)",
		Enum:        enum(cluster.KindNames()),
	}
}

func namespaceSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: "Namespace of the resource (defaults to \"default\"; ignored for cluster-scoped kinds)",
	}
}

func filterSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: "Optional jq expression applied to the JSON result, e.g. '.items[] | select(.status != \"Running\") | .name'",
	}
}

func builtinSpecs() []*Spec {
	return []*Spec{
		{
			Name: ListResources,
			Description: "List resources of one kind. Returns {kind, namespace, count, items[]} where each item has " +
				"name, namespace, status, reason, ready, restarts, age, labels and owner.",
			ReadOnly: true,
			Parameters: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"kind":      kindSchema(),
					"namespace": namespaceSchema(),
					"all_namespaces": {
						Type:        "boolean",
						Description: "List across every namespace",
					},
					"label_selector": {
						Type:        "string",
						Description: "Kubernetes label selector, e.g. app=web,tier!=cache",
					},
					"filter": filterSchema(),
				},
				Required: []string{"kind"},
			},
			handler: listResources,
		},
		{
			Name: GetResource,
			Description: "Get one resource by kind and name with spec and status details " +
				"(pods: containers, images, states, node, IPs; deployments: replicas, selector, images; services: type, ports).",
			ReadOnly: true,
			Parameters: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"kind": kindSchema(),
					"name": {
						Type:        "string",
						Description: "Exact resource name",
					},
					"namespace": namespaceSchema(),
					"filter":    filterSchema(),
				},
				Required: []string{"kind", "name"},
			},
			handler: getResource,
		},
		{
			Name:        GetLogs,
			Description: "Fetch the tail of a pod container's log.",
			ReadOnly:    true,
			Parameters: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"pod": {
						Type:        "string",
						Description: "Exact pod name",
					},
					"namespace": namespaceSchema(),
					"container": {
						Type:        "string",
						Description: "Container name (defaults to the first container)",
					},
					"tail_lines": {
						Type:        "integer",
						Description: "Number of trailing lines to return",
						Minimum:     ptr.To(1.0),
					},
					"previous": {
						Type:        "boolean",
						Description: "Return logs of the previous, terminated container instance",
					},
				},
				Required: []string{"pod"},
			},
			handler: getLogs,
		},
		{
			Name:        GetOwners,
			Description: "Get the direct owners of a resource (controller first) and the top-level workload it belongs to.",
			ReadOnly:    true,
			Parameters: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"kind":      kindSchema(),
					"name":      {Type: "string", Description: "Exact resource name"},
					"namespace": namespaceSchema(),
				},
				Required: []string{"kind", "name"},
			},
			handler: getOwners,
		},
		{
			Name: FinalAnswer,
			Description: "Finish with the answer. Give only the value asked for: a name, a number, a status word, " +
				"a comma-separated list, or a short text. Use \"unknown\" when the cluster does not hold the answer.",
			ReadOnly: true,
			Parameters: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"answer": {
						Type:        "string",
						Description: "The answer value",
					},
					"shape": {
						Type:        "string",
						Description: "Kind of answer: name, count, status, list, text, or auto",
						Enum:        enum(normalize.Shapes()),
					},
				},
				Required: []string{"answer"},
			},
		},
	}
}
