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
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/NVIDIA/cluster-query-agent/pkg/errors"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"pod", KindPod},
		{"Pods", KindPod},
		{" po ", KindPod},
		{"deploy", KindDeployment},
		{"rs", KindReplicaSet},
		{"sts", KindStatefulSet},
		{"DaemonSets", KindDaemonSet},
		{"cj", KindCronJob},
		{"svc", KindService},
		{"no", KindNode},
		{"ns", KindNamespace},
		{"cm", KindConfigMap},
		{"pvc", KindPersistentVolumeClaim},
		{"pv", KindPersistentVolume},
		{"ing", KindIngress},
		{"sa", KindServiceAccount},
		{"ev", KindEvent},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKind_Rejected(t *testing.T) {
	for _, in := range []string{"secret", "secrets", "crd", ""} {
		_, err := ParseKind(in)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest), in)
	}
}

func TestKinds(t *testing.T) {
	kinds := Kinds()
	assert.Len(t, kinds, 16)
	assert.True(t, slices.IsSorted(kinds))

	for _, k := range kinds {
		_, ok := handlers[k]
		assert.True(t, ok, k)
	}
	assert.NotContains(t, KindNames(), "secret")
	assert.Contains(t, KindNames(), "pvc")
}

func TestKind_Namespaced(t *testing.T) {
	assert.True(t, KindPod.Namespaced())
	assert.True(t, KindEvent.Namespaced())
	assert.False(t, KindNode.Namespaced())
	assert.False(t, KindNamespace.Namespaced())
	assert.False(t, KindPersistentVolume.Namespaced())
	assert.False(t, Kind("widget").Namespaced())
}
