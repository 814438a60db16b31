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
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
	"k8s.io/utils/ptr"

	apperrors "github.com/NVIDIA/cluster-query-agent/pkg/errors"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestAdapter(objs ...runtime.Object) (*Adapter, *fake.Clientset) {
	cs := fake.NewClientset(objs...)
	a := NewAdapter(cs,
		WithBackoff(wait.Backoff{Steps: 3, Duration: time.Millisecond, Factor: 1}),
		WithClock(func() time.Time { return testNow }))
	return a, cs
}

func node(name string, ready bool) *corev1.Node {
	status := corev1.ConditionFalse
	if ready {
		status = corev1.ConditionTrue
	}
	return &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Status: corev1.NodeStatus{
			Conditions: []corev1.NodeCondition{{Type: corev1.NodeReady, Status: status}},
		},
	}
}

func pod(name, ns string, phase corev1.PodPhase, lbls map[string]string) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:              name,
			Namespace:         ns,
			Labels:            lbls,
			CreationTimestamp: metav1.NewTime(testNow.Add(-5 * time.Hour)),
		},
		Spec: corev1.PodSpec{
			NodeName:   "node-a",
			Containers: []corev1.Container{{Name: "app", Image: "nginx:1.27"}},
		},
		Status: corev1.PodStatus{
			Phase: phase,
			PodIP: "10.0.0.7",
			ContainerStatuses: []corev1.ContainerStatus{{
				Name:  "app",
				Image: "nginx:1.27",
				Ready: phase == corev1.PodRunning,
				State: corev1.ContainerState{Running: &corev1.ContainerStateRunning{}},
			}},
		},
	}
}

func TestListResources_Nodes(t *testing.T) {
	a, _ := newTestAdapter(node("worker-2", false), node("worker-1", true))

	got, err := a.ListResources(context.Background(), ListOptions{Kind: "nodes"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "worker-1", got[0].Name)
	assert.Equal(t, NodeReady, got[0].Status)
	assert.Equal(t, "worker-2", got[1].Name)
	assert.Equal(t, NodeNotReady, got[1].Status)
	assert.Equal(t, KindNode, got[0].Kind)
	assert.Empty(t, got[0].Namespace)
}

func TestListResources_Namespaces(t *testing.T) {
	a, _ := newTestAdapter(
		pod("example-pod", "default", corev1.PodRunning, nil),
		pod("coredns-abc12", "kube-system", corev1.PodRunning, nil),
	)

	tests := []struct {
		name  string
		opts  ListOptions
		names []string
	}{
		{
			name:  "defaults to default namespace",
			opts:  ListOptions{Kind: "pod"},
			names: []string{"example-pod"},
		},
		{
			name:  "explicit namespace",
			opts:  ListOptions{Kind: "po", Namespace: "kube-system"},
			names: []string{"coredns-abc12"},
		},
		{
			name:  "all namespaces",
			opts:  ListOptions{Kind: "Pods", AllNamespaces: true},
			names: []string{"example-pod", "coredns-abc12"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.ListResources(context.Background(), tt.opts)
			require.NoError(t, err)
			names := make([]string, 0, len(got))
			for _, s := range got {
				names = append(names, s.Name)
			}
			assert.Equal(t, tt.names, names)
		})
	}
}

func TestListResources_LabelSelector(t *testing.T) {
	a, _ := newTestAdapter(
		pod("web-1", "default", corev1.PodRunning, map[string]string{"app": "web"}),
		pod("db-1", "default", corev1.PodRunning, map[string]string{"app": "db"}),
	)

	got, err := a.ListResources(context.Background(), ListOptions{Kind: "pod", LabelSelector: "app=web"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "web-1", got[0].Name)

	_, err = a.ListResources(context.Background(), ListOptions{Kind: "pod", LabelSelector: "app in (("})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest))
}

func TestListResources_InvalidKind(t *testing.T) {
	a, _ := newTestAdapter()

	for _, kind := range []string{"secret", "secrets", "widget", ""} {
		_, err := a.ListResources(context.Background(), ListOptions{Kind: kind})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest), kind)
	}
}

func TestPodSummary_CrashLoop(t *testing.T) {
	p := pod("api-7d9f8b6c5d-x7g2p", "default", corev1.PodRunning, nil)
	p.Status.ContainerStatuses[0] = corev1.ContainerStatus{
		Name:         "app",
		RestartCount: 4,
		State: corev1.ContainerState{Waiting: &corev1.ContainerStateWaiting{
			Reason: "CrashLoopBackOff",
		}},
	}
	a, _ := newTestAdapter(p)

	got, err := a.ListResources(context.Background(), ListOptions{Kind: "pod"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	s := got[0]
	assert.Equal(t, "Running", s.Status)
	assert.Equal(t, "CrashLoopBackOff", s.Reason)
	assert.Equal(t, "0/1", s.Ready)
	assert.Equal(t, int32(4), s.Restarts)
	assert.Equal(t, "5h", s.Age)
}

func TestGetResource_Pod(t *testing.T) {
	a, _ := newTestAdapter(pod("example-pod", "default", corev1.PodRunning, nil))

	d, err := a.GetResource(context.Background(), "pod", "example-pod", "")
	require.NoError(t, err)

	assert.Equal(t, "Running", d.Status)
	assert.Equal(t, "default", d.Namespace)
	assert.Equal(t, "node-a", d.Spec["nodeName"])
	assert.Equal(t, "10.0.0.7", d.StatusDetail["podIP"])

	statuses, ok := d.StatusDetail["containerStatuses"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, statuses, 1)
	assert.Equal(t, "Running", statuses[0]["state"])
}

func TestGetResource_Deployment(t *testing.T) {
	dep := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: "my-deployment", Namespace: "default"},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(int32(3)),
			Selector: &metav1.LabelSelector{MatchLabels: map[string]string{"app": "web"}},
			Template: corev1.PodTemplateSpec{
				Spec: corev1.PodSpec{Containers: []corev1.Container{{Name: "web", Image: "nginx:1.27"}}},
			},
		},
		Status: appsv1.DeploymentStatus{ReadyReplicas: 2},
	}
	a, _ := newTestAdapter(dep)

	d, err := a.GetResource(context.Background(), "deploy", "my-deployment", "default")
	require.NoError(t, err)
	assert.Equal(t, "2/3", d.Status)
	assert.Equal(t, int32(3), d.Spec["replicas"])
	assert.Equal(t, "app=web", d.Spec["selector"])
	assert.Equal(t, []string{"nginx:1.27"}, d.Spec["images"])
}

func TestGetResource_GenericKind(t *testing.T) {
	pvc := &corev1.PersistentVolumeClaim{
		ObjectMeta: metav1.ObjectMeta{Name: "data", Namespace: "default"},
		Status:     corev1.PersistentVolumeClaimStatus{Phase: corev1.ClaimBound},
	}
	a, _ := newTestAdapter(pvc)

	d, err := a.GetResource(context.Background(), "pvc", "data", "default")
	require.NoError(t, err)
	assert.Equal(t, "Bound", d.Status)
	assert.Equal(t, "Bound", d.StatusDetail["phase"])
}

func TestGetResource_Errors(t *testing.T) {
	a, _ := newTestAdapter()

	tests := []struct {
		name string
		kind string
		res  string
		code apperrors.ErrorCode
	}{
		{name: "missing pod", kind: "pod", res: "nonexistent", code: apperrors.ErrCodeNotFound},
		{name: "empty name", kind: "pod", res: " ", code: apperrors.ErrCodeInvalidRequest},
		{name: "unknown kind", kind: "widget", res: "x", code: apperrors.ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.GetResource(context.Background(), tt.kind, tt.res, "")
			require.Error(t, err)
			assert.Equal(t, tt.code, apperrors.CodeOf(err))
		})
	}
}

func TestRetry_UnavailableAfterAttempts(t *testing.T) {
	a, cs := newTestAdapter()

	var calls atomic.Int32
	cs.PrependReactor("list", "nodes", func(k8stesting.Action) (bool, runtime.Object, error) {
		calls.Add(1)
		return true, nil, apierrors.NewServiceUnavailable("apiserver down")
	})

	_, err := a.ListResources(context.Background(), ListOptions{Kind: "node"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.CodeOf(err))
	assert.Equal(t, int32(3), calls.Load())
}

func TestRetry_RecoversFromTransientFailure(t *testing.T) {
	a, cs := newTestAdapter(node("worker-1", true))

	var calls atomic.Int32
	cs.PrependReactor("list", "nodes", func(k8stesting.Action) (bool, runtime.Object, error) {
		if calls.Add(1) == 1 {
			return true, nil, apierrors.NewTooManyRequests("slow down", 0)
		}
		return false, nil, nil
	})

	got, err := a.ListResources(context.Background(), ListOptions{Kind: "node"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRetry_AuthFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "unauthorized", err: apierrors.NewUnauthorized("token expired")},
		{name: "forbidden", err: apierrors.NewForbidden(corev1.Resource("nodes"), "", errors.New("rbac denied"))},
	}

	for _, tt := range tests {
		t.Run(tt.name+" retried then recovered", func(t *testing.T) {
			a, cs := newTestAdapter(node("worker-1", true))

			var calls atomic.Int32
			cs.PrependReactor("list", "nodes", func(k8stesting.Action) (bool, runtime.Object, error) {
				if calls.Add(1) == 1 {
					return true, nil, tt.err
				}
				return false, nil, nil
			})

			got, err := a.ListResources(context.Background(), ListOptions{Kind: "node"})
			require.NoError(t, err)
			assert.Len(t, got, 1)
			assert.Equal(t, int32(2), calls.Load())
		})

		t.Run(tt.name+" unavailable after attempts", func(t *testing.T) {
			a, cs := newTestAdapter()

			var calls atomic.Int32
			cs.PrependReactor("list", "nodes", func(k8stesting.Action) (bool, runtime.Object, error) {
				calls.Add(1)
				return true, nil, tt.err
			})

			_, err := a.ListResources(context.Background(), ListOptions{Kind: "node"})
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.CodeOf(err))
			assert.Equal(t, int32(3), calls.Load())
		})
	}
}

func TestRetry_NotFoundIsNotRetried(t *testing.T) {
	a, cs := newTestAdapter()

	var calls atomic.Int32
	cs.PrependReactor("get", "pods", func(k8stesting.Action) (bool, runtime.Object, error) {
		calls.Add(1)
		return false, nil, nil
	})

	_, err := a.GetResource(context.Background(), "pod", "nonexistent", "default")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
	assert.Equal(t, int32(1), calls.Load())
}

func TestRetry_CancelledContext(t *testing.T) {
	a, cs := newTestAdapter()
	ctx, cancel := context.WithCancel(context.Background())

	cs.PrependReactor("list", "pods", func(k8stesting.Action) (bool, runtime.Object, error) {
		cancel()
		return true, nil, apierrors.NewInternalError(context.Canceled)
	})

	_, err := a.ListResources(ctx, ListOptions{Kind: "pod"})
	assert.Equal(t, apperrors.ErrCodeTimeout, apperrors.CodeOf(err))
}

func TestGetLogs(t *testing.T) {
	a, _ := newTestAdapter(pod("example-pod", "default", corev1.PodRunning, nil))

	t.Run("default container", func(t *testing.T) {
		out, err := a.GetLogs(context.Background(), LogOptions{Pod: "example-pod"})
		require.NoError(t, err)
		assert.Equal(t, "fake logs", out)
	})

	t.Run("missing pod", func(t *testing.T) {
		_, err := a.GetLogs(context.Background(), LogOptions{Pod: "nonexistent"})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
	})

	t.Run("missing container", func(t *testing.T) {
		_, err := a.GetLogs(context.Background(), LogOptions{Pod: "example-pod", Container: "sidecar"})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
	})
}
