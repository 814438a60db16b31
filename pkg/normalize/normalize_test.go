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

package normalize

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		shape Shape
		want  string
	}{
		{name: "bare count", raw: "2", shape: ShapeAuto, want: "2"},
		{name: "count with unit", raw: "3 pods", shape: ShapeAuto, want: "3"},
		{name: "grouped thousands", raw: "1,024", shape: ShapeCount, want: "1024"},
		{name: "count in sentence", raw: "There are 2 nodes.", shape: ShapeCount, want: "2"},
		{name: "count word", raw: "two", shape: ShapeCount, want: "2"},
		{name: "count of listed items", raw: "a, b, c", shape: ShapeCount, want: "3"},
		{name: "leading zeros", raw: "007", shape: ShapeCount, want: "7"},
		{name: "lower-case status", raw: "running", shape: ShapeAuto, want: "Running"},
		{name: "status enum casing", raw: "crashloopbackoff", shape: ShapeStatus, want: "CrashLoopBackOff"},
		{name: "status in sentence", raw: "The pod is running.", shape: ShapeStatus, want: "Running"},
		{name: "two-word status", raw: "not ready", shape: ShapeStatus, want: "NotReady"},
		{name: "emphasised status", raw: "**Pending**", shape: ShapeAuto, want: "Pending"},
		{name: "pod name to base", raw: "my-deployment-56c598c8fc-x7g2p", shape: ShapeAuto, want: "my-deployment"},
		{name: "quoted pod name", raw: "`my-deployment-56c598c8fc-x7g2p`", shape: ShapeAuto, want: "my-deployment"},
		{name: "name in sentence", raw: "The deployment is my-deployment-56c598c8fc.", shape: ShapeName, want: "my-deployment"},
		{name: "first name candidate", raw: "web-5d78c9869d-8xgjq, db-0", shape: ShapeName, want: "web"},
		{name: "plain name kept", raw: "\"example-pod\"", shape: ShapeAuto, want: "example-pod"},
		{name: "ordinal kept", raw: "mongodb-0", shape: ShapeName, want: "mongodb-0"},
		{name: "whitespace collapsed", raw: "  nginx   is  serving ", shape: ShapeAuto, want: "nginx is serving"},
		{name: "list joined", raw: "web-5d78c9869d-8xgjq, web-5d78c9869d-2bqkx\ndb-0", shape: ShapeList, want: "web, db-0"},
		{name: "list of statuses", raw: "running; pending", shape: ShapeList, want: "Running, Pending"},
		{name: "list bullets", raw: "- coredns-5d78c9869d-8xgjq\n- kube-proxy-x7g2p", shape: ShapeList, want: "coredns, kube-proxy"},
		{name: "text keeps lines", raw: "  line one\n  line two  ", shape: ShapeText, want: "line one\n  line two"},
		{name: "empty", raw: "   ", shape: ShapeAuto, want: ""},
		{name: "auto first of several names", raw: "web-7d4b9c8f6d-abcde, api-5f6d7c8b9a-xyz12", shape: ShapeAuto, want: "web"},
		{name: "auto name in sentence", raw: "The pod is my-deployment-56c598c8fc-x7g2p", shape: ShapeAuto, want: "my-deployment"},
		{name: "auto quoted name in sentence", raw: "It belongs to `coredns-5d78c9869d-8xgjq`.", shape: ShapeAuto, want: "coredns"},
		{name: "auto count in sentence", raw: "There are 2 nodes in the cluster.", shape: ShapeAuto, want: "2"},
		{name: "auto count before a list", raw: "There are 2 nodes: worker-1, worker-2", shape: ShapeAuto, want: "2"},
		{name: "auto grouped count in sentence", raw: "The cluster runs 1,024 pods", shape: ShapeAuto, want: "1024"},
		{name: "auto grouped count with unit", raw: "1,024 pods", shape: ShapeAuto, want: "1024"},
		{name: "auto status in sentence", raw: "The pod is running.", shape: ShapeAuto, want: "Running"},
		{name: "auto two-word status in sentence", raw: "Node worker-2 is not ready", shape: ShapeAuto, want: "NotReady"},
		{name: "auto first of several statuses", raw: "Running, Pending", shape: ShapeAuto, want: "Running"},
		{name: "auto several numbers stay text", raw: "2 of 3 replicas are up", shape: ShapeAuto, want: "2 of 3 replicas are up"},
		{name: "auto long sentence stays text", raw: "The service routes traffic to every ready pod behind the selector app equals web", shape: ShapeAuto, want: "The service routes traffic to every ready pod behind the selector app equals web"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw, tt.shape))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []struct {
		raw   string
		shape Shape
	}{
		{"my-deployment-56c598c8fc-x7g2p", ShapeAuto},
		{"1,024", ShapeCount},
		{"crashloopbackoff", ShapeStatus},
		{"web-5d78c9869d-8xgjq, db-0", ShapeList},
		{"\"example-pod\".", ShapeAuto},
	}
	for _, in := range inputs {
		once := Normalize(in.raw, in.shape)
		assert.Equal(t, once, Normalize(once, in.shape), in.raw)
	}
}

func TestNormalize_CountIsNonNegativeInteger(t *testing.T) {
	for _, raw := range []string{"0", "12 nodes", "There are 3 pods", "1,234,567", "none", "x, y"} {
		got := Normalize(raw, ShapeCount)
		n, err := strconv.Atoi(got)
		require.NoError(t, err, raw)
		assert.GreaterOrEqual(t, n, 0, raw)
	}
}

func TestNormalize_NameHasNoGeneratedSuffix(t *testing.T) {
	for _, raw := range []string{
		"my-deployment-56c598c8fc-x7g2p",
		"coredns-5d78c9869d-8xgjq",
		"fluentd-x7g2p",
		"nightly-29012345-w7zqk",
		"api-7d9f8b6c5d",
		"payments-api-bcdfg",
	} {
		got := Normalize(raw, ShapeName)
		assert.False(t, HasGeneratedSuffix(got), "%s -> %s", raw, got)
	}
}

func TestNormalize_AutoNameHasNoGeneratedSuffix(t *testing.T) {
	for _, raw := range []string{
		"web-7d4b9c8f6d-abcde, api-5f6d7c8b9a-xyz12",
		"The pod is my-deployment-56c598c8fc-x7g2p",
		"my-deployment-56c598c8fc-x7g2p is the one that restarted.",
		"Pods: coredns-5d78c9869d-8xgjq; kube-proxy-x7g2p",
		"- fluentd-x7g2p\n- fluentd-k2m9q",
		"**payments-api-6b7c8d9f5c**",
	} {
		got := Normalize(raw, ShapeAuto)
		assert.False(t, HasGeneratedSuffix(got), "%s -> %s", raw, got)
		for _, w := range phraseWords(got) {
			assert.False(t, HasGeneratedSuffix(w), "%s -> %s", raw, got)
		}
		assert.Equal(t, got, Normalize(got, ShapeAuto), raw)
	}
}

func TestGeneratedName(t *testing.T) {
	got, ok := GeneratedName("The pod is `my-deployment-56c598c8fc-x7g2p`.")
	require.True(t, ok)
	assert.Equal(t, "my-deployment-56c598c8fc-x7g2p", got)

	_, ok = GeneratedName("example-pod and web-0")
	assert.False(t, ok)
}

func TestHasGeneratedSuffix(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"my-deployment-56c598c8fc-x7g2p", true},
		{"my-deployment-56c598c8fc", true},
		{"fluentd-x7g2p", true},
		{"my-app-bcdfg", true},
		{"web-7d4b9c8f6d-abcde", true},
		{"release-candidate-final", false},
		{"web-0", false},
		{"example-pod", false},
		{"nginx-proxy", false},
		{"ingress-nginx-controller", false},
		{"x7g2p", false},
		{"Web-X7G2P", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasGeneratedSuffix(tt.name))
		})
	}
}

func TestStripGeneratedSuffix(t *testing.T) {
	assert.Equal(t, "my-deployment", StripGeneratedSuffix("my-deployment-56c598c8fc-x7g2p"))
	assert.Equal(t, "my-deployment", StripGeneratedSuffix("my-deployment-56c598c8fc"))
	assert.Equal(t, "fluentd", StripGeneratedSuffix("fluentd-x7g2p"))
	assert.Equal(t, "web-0", StripGeneratedSuffix("web-0"))
	assert.Equal(t, "example-pod", StripGeneratedSuffix("example-pod"))
}

func TestDetectShape(t *testing.T) {
	tests := []struct {
		in   string
		want Shape
	}{
		{"42", ShapeCount},
		{"1,024", ShapeCount},
		{"Running", ShapeStatus},
		{"ImagePullBackOff", ShapeStatus},
		{"my-deployment-56c598c8fc-x7g2p", ShapeName},
		{"example-pod", ShapeText},
		{"the pod is on node-a", ShapeText},
		{"", ShapeText},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectShape(tt.in))
		})
	}
}

func TestParseShape(t *testing.T) {
	assert.Equal(t, ShapeCount, ParseShape("COUNT"))
	assert.Equal(t, ShapeList, ParseShape(" list "))
	assert.Equal(t, ShapeAuto, ParseShape(""))
	assert.Equal(t, ShapeAuto, ParseShape("table"))
	assert.Len(t, Shapes(), 6)
}

func TestStatus(t *testing.T) {
	got, ok := Status("image_pull_back_off")
	require.True(t, ok)
	assert.Equal(t, "ImagePullBackOff", got)

	_, ok = Status("sleeping")
	assert.False(t, ok)
}
