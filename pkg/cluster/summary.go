package cluster

import (
	"fmt"
	"strings"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/duration"
	"k8s.io/utils/ptr"
)

// Node status values.
const (
	NodeReady    = "Ready"
	NodeNotReady = "NotReady"
	NodeUnknown  = "Unknown"
)

// Job status values.
const (
	JobComplete  = "Complete"
	JobFailed    = "Failed"
	JobRunning   = "Running"
	JobSuspended = "Suspended"
)

// summarize projects obj into a ResourceSummary. now anchors the Age column.
func summarize(kind Kind, obj runtime.Object, now time.Time) (ResourceSummary, error) {
	m, err := meta.Accessor(obj)
	if err != nil {
		return ResourceSummary{}, fmt.Errorf("failed to access %s metadata: %w", kind, err)
	}

	s := ResourceSummary{
		Kind:      kind,
		Name:      m.GetName(),
		Namespace: m.GetNamespace(),
		Labels:    m.GetLabels(),
		Age:       age(m.GetCreationTimestamp(), now),
		Owner:     controllerOf(m),
	}

	switch o := obj.(type) {
	case *corev1.Pod:
		s.Status = string(o.Status.Phase)
		s.Reason = podReason(o)
		s.Message = o.Status.Message
		ready, total, restarts := containerCounts(o)
		s.Ready = fmt.Sprintf("%d/%d", ready, total)
		s.Restarts = restarts
	case *appsv1.Deployment:
		s.Status = ratio(o.Status.ReadyReplicas, ptr.Deref(o.Spec.Replicas, 1))
		s.Ready = s.Status
	case *appsv1.ReplicaSet:
		s.Status = ratio(o.Status.ReadyReplicas, ptr.Deref(o.Spec.Replicas, 1))
		s.Ready = s.Status
	case *appsv1.StatefulSet:
		s.Status = ratio(o.Status.ReadyReplicas, ptr.Deref(o.Spec.Replicas, 1))
		s.Ready = s.Status
	case *appsv1.DaemonSet:
		s.Status = ratio(o.Status.NumberReady, o.Status.DesiredNumberScheduled)
		s.Ready = s.Status
	case *batchv1.Job:
		s.Status = jobStatus(o)
		s.Ready = fmt.Sprintf("%d/%d", o.Status.Succeeded, ptr.Deref(o.Spec.Completions, 1))
	case *batchv1.CronJob:
		s.Status = cronJobStatus(o)
	case *corev1.Service:
		s.Status = string(o.Spec.Type)
	case *corev1.Node:
		s.Status = nodeStatus(o)
		if o.Spec.Unschedulable {
			s.Reason = "SchedulingDisabled"
		}
	case *corev1.Namespace:
		s.Status = string(o.Status.Phase)
	case *corev1.PersistentVolumeClaim:
		s.Status = string(o.Status.Phase)
	case *corev1.PersistentVolume:
		s.Status = string(o.Status.Phase)
		s.Reason = o.Status.Reason
	case *networkingv1.Ingress:
		if o.Spec.IngressClassName != nil {
			s.Status = *o.Spec.IngressClassName
		}
	case *corev1.Event:
		s.Status = o.Type
		s.Reason = o.Reason
		s.Message = o.Message
		s.Owner = &OwnerRef{
			Kind:      kindFromOwner(o.InvolvedObject.Kind),
			Name:      o.InvolvedObject.Name,
			Namespace: o.InvolvedObject.Namespace,
		}
	}

	return s, nil
}

func ratio(ready, desired int32) string {
	return fmt.Sprintf("%d/%d", ready, desired)
}

func age(created metav1.Time, now time.Time) string {
	if created.IsZero() {
		return ""
	}
	return duration.HumanDuration(now.Sub(created.Time))
}

func controllerOf(m metav1.Object) *OwnerRef {
	ref := metav1.GetControllerOfNoCopy(m)
	if ref == nil {
		return nil
	}
	return &OwnerRef{
		Kind:      kindFromOwner(ref.Kind),
		Name:      ref.Name,
		Namespace: m.GetNamespace(),
	}
}

// podReason reports the most specific reason a pod is not simply running,
// such as CrashLoopBackOff or ImagePullBackOff.
func podReason(p *corev1.Pod) string {
	if p.DeletionTimestamp != nil {
		return "Terminating"
	}
	statuses := append(append([]corev1.ContainerStatus{}, p.Status.InitContainerStatuses...), p.Status.ContainerStatuses...)
	for _, cs := range statuses {
		if w := cs.State.Waiting; w != nil && w.Reason != "" && w.Reason != "PodInitializing" {
			return w.Reason
		}
		if t := cs.State.Terminated; t != nil && t.Reason != "" && t.Reason != "Completed" {
			return t.Reason
		}
	}
	return p.Status.Reason
}

func containerCounts(p *corev1.Pod) (ready, total int, restarts int32) {
	total = len(p.Spec.Containers)
	for _, cs := range p.Status.ContainerStatuses {
		if cs.Ready {
			ready++
		}
		restarts += cs.RestartCount
	}
	return ready, total, restarts
}

func nodeStatus(n *corev1.Node) string {
	for _, c := range n.Status.Conditions {
		if c.Type != corev1.NodeReady {
			continue
		}
		if c.Status == corev1.ConditionTrue {
			return NodeReady
		}
		return NodeNotReady
	}
	return NodeUnknown
}

func jobStatus(j *batchv1.Job) string {
	for _, c := range j.Status.Conditions {
		if c.Status != corev1.ConditionTrue {
			continue
		}
		switch c.Type {
		case batchv1.JobComplete:
			return JobComplete
		case batchv1.JobFailed:
			return JobFailed
		case batchv1.JobSuspended:
			return JobSuspended
		}
	}
	return JobRunning
}

func cronJobStatus(c *batchv1.CronJob) string {
	switch {
	case ptr.Deref(c.Spec.Suspend, false):
		return "Suspended"
	case len(c.Status.Active) > 0:
		return "Active"
	default:
		return "Scheduled"
	}
}

// describeState renders a container state as a single word with its reason.
func describeState(st corev1.ContainerState) (string, string) {
	switch {
	case st.Running != nil:
		return "Running", ""
	case st.Waiting != nil:
		return "Waiting", st.Waiting.Reason
	case st.Terminated != nil:
		return "Terminated", st.Terminated.Reason
	default:
		return "", ""
	}
}

func joinNonEmpty(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ",")
}
