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
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/utils/ptr"
)

// describe builds the detail projection for a single object.
func describe(kind Kind, obj runtime.Object, now time.Time) (*ResourceDetail, error) {
	s, err := summarize(kind, obj, now)
	if err != nil {
		return nil, err
	}
	d := &ResourceDetail{ResourceSummary: s}

	switch o := obj.(type) {
	case *corev1.Pod:
		d.Spec, d.StatusDetail = podDetail(o)
	case *appsv1.Deployment:
		d.Spec, d.StatusDetail = deploymentDetail(o)
	case *corev1.Service:
		d.Spec = serviceDetail(o)
	case *corev1.ConfigMap:
		keys := make([]string, 0, len(o.Data)+len(o.BinaryData))
		for k := range o.Data {
			keys = append(keys, k)
		}
		for k := range o.BinaryData {
			keys = append(keys, k)
		}
		d.Spec = map[string]any{"keys": keys, "data": o.Data}
	case *corev1.Event:
		d.Spec = map[string]any{
			"involvedObject": map[string]any{
				"kind":      o.InvolvedObject.Kind,
				"name":      o.InvolvedObject.Name,
				"namespace": o.InvolvedObject.Namespace,
			},
			"message":  o.Message,
			"reason":   o.Reason,
			"count":    o.Count,
			"source":   o.Source.Component,
			"lastSeen": o.LastTimestamp.UTC().Format(time.RFC3339),
		}
	default:
		if err := genericDetail(d, obj); err != nil {
			return nil, fmt.Errorf("failed to project %s %s: %w", kind, s.Name, err)
		}
	}

	return d, nil
}

func podDetail(p *corev1.Pod) (map[string]any, map[string]any) {
	containers := make([]map[string]any, 0, len(p.Spec.Containers))
	for _, c := range p.Spec.Containers {
		containers = append(containers, map[string]any{"name": c.Name, "image": c.Image})
	}

	statuses := make([]map[string]any, 0, len(p.Status.ContainerStatuses))
	for _, cs := range p.Status.ContainerStatuses {
		state, reason := describeState(cs.State)
		entry := map[string]any{
			"name":         cs.Name,
			"image":        cs.Image,
			"ready":        cs.Ready,
			"restartCount": cs.RestartCount,
			"state":        state,
		}
		if reason != "" {
			entry["reason"] = reason
		}
		if last, lastReason := describeState(cs.LastTerminationState); last != "" {
			entry["lastState"] = joinNonEmpty(last, lastReason)
		}
		statuses = append(statuses, entry)
	}

	spec := map[string]any{
		"nodeName":           p.Spec.NodeName,
		"serviceAccountName": p.Spec.ServiceAccountName,
		"restartPolicy":      string(p.Spec.RestartPolicy),
		"containers":         containers,
	}
	status := map[string]any{
		"phase":             string(p.Status.Phase),
		"podIP":             p.Status.PodIP,
		"hostIP":            p.Status.HostIP,
		"qosClass":          string(p.Status.QOSClass),
		"containerStatuses": statuses,
		"conditions":        podConditions(p.Status.Conditions),
	}
	if p.Status.StartTime != nil {
		status["startTime"] = p.Status.StartTime.UTC().Format(time.RFC3339)
	}
	return spec, status
}

func podConditions(conds []corev1.PodCondition) map[string]string {
	out := make(map[string]string, len(conds))
	for _, c := range conds {
		out[string(c.Type)] = string(c.Status)
	}
	return out
}

func deploymentDetail(d *appsv1.Deployment) (map[string]any, map[string]any) {
	images := make([]string, 0, len(d.Spec.Template.Spec.Containers))
	for _, c := range d.Spec.Template.Spec.Containers {
		images = append(images, c.Image)
	}

	var selector string
	if d.Spec.Selector != nil {
		selector = metav1.FormatLabelSelector(d.Spec.Selector)
	}

	conds := make(map[string]string, len(d.Status.Conditions))
	for _, c := range d.Status.Conditions {
		conds[string(c.Type)] = string(c.Status)
	}

	spec := map[string]any{
		"replicas": ptr.Deref(d.Spec.Replicas, 1),
		"selector": selector,
		"images":   images,
		"strategy": string(d.Spec.Strategy.Type),
	}
	status := map[string]any{
		"readyReplicas":     d.Status.ReadyReplicas,
		"availableReplicas": d.Status.AvailableReplicas,
		"updatedReplicas":   d.Status.UpdatedReplicas,
		"conditions":        conds,
	}
	return spec, status
}

func serviceDetail(s *corev1.Service) map[string]any {
	ports := make([]map[string]any, 0, len(s.Spec.Ports))
	for _, p := range s.Spec.Ports {
		entry := map[string]any{
			"port":       p.Port,
			"protocol":   string(p.Protocol),
			"targetPort": p.TargetPort.String(),
		}
		if p.Name != "" {
			entry["name"] = p.Name
		}
		if p.NodePort != 0 {
			entry["nodePort"] = p.NodePort
		}
		ports = append(ports, entry)
	}
	return map[string]any{
		"type":      string(s.Spec.Type),
		"clusterIP": s.Spec.ClusterIP,
		"ports":     ports,
		"selector":  s.Spec.Selector,
	}
}

// genericDetail copies the spec and status stanzas of any typed object.
func genericDetail(d *ResourceDetail, obj runtime.Object) error {
	u, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return err
	}
	if spec, ok := u["spec"].(map[string]any); ok {
		d.Spec = spec
	}
	if status, ok := u["status"].(map[string]any); ok {
		// Node image lists are large and never useful for answers.
		delete(status, "images")
		d.StatusDetail = status
	}
	return nil
}
