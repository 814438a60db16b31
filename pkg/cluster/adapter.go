package cluster

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/kubernetes"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/cluster-query-agent/pkg/defaults"
	apperrors "github.com/NVIDIA/cluster-query-agent/pkg/errors"
)

// DefaultNamespace is used for namespaced reads that name no namespace.
const DefaultNamespace = metav1.NamespaceDefault

// Adapter performs read-only queries against the cluster API.
// It is safe for concurrent use.
type Adapter struct {
	client      kubernetes.Interface
	backoff     wait.Backoff
	callTimeout time.Duration
	now         func() time.Time
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithBackoff overrides the retry backoff.
func WithBackoff(b wait.Backoff) Option {
	return func(a *Adapter) {
		a.backoff = b
	}
}

// WithCallTimeout bounds each individual API call.
func WithCallTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.callTimeout = d
		}
	}
}

// WithClock sets the clock used to compute resource ages.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAdapter returns an Adapter over the given clientset.
func NewAdapter(client kubernetes.Interface, opts ...Option) *Adapter {
	a := &Adapter{
		client:      client,
		backoff:     DefaultBackoff(),
		callTimeout: defaults.K8sCallTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func resolveNamespace(k Kind, ns string) string {
	if !k.Namespaced() {
		return ""
	}
	if ns = strings.TrimSpace(ns); ns == "" {
		return DefaultNamespace
	}
	return ns
}

// ListResources lists resources of one kind, sorted by namespace and name.
func (a *Adapter) ListResources(ctx context.Context, opts ListOptions) ([]ResourceSummary, error) {
	kind, err := ParseKind(opts.Kind)
	if err != nil {
		return nil, err
	}
	if opts.LabelSelector != "" {
		if _, err := labels.Parse(opts.LabelSelector); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid label selector %q", opts.LabelSelector), err)
		}
	}

	ns := resolveNamespace(kind, opts.Namespace)
	if opts.AllNamespaces {
		ns = metav1.NamespaceAll
	}

	var objs []runtime.Object
	err = a.call(ctx, "list "+string(kind), map[string]any{"kind": kind, "namespace": ns}, func(ctx context.Context) error {
		var lerr error
		objs, lerr = handlers[kind].list(ctx, a.client, ns, metav1.ListOptions{LabelSelector: opts.LabelSelector})
		return lerr
	})
	if err != nil {
		return nil, err
	}

	now := a.now()
	out := make([]ResourceSummary, 0, len(objs))
	for _, obj := range objs {
		s, err := summarize(kind, obj, now)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to summarize resource", err)
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Namespace != out[j].Namespace {
			return out[i].Namespace < out[j].Namespace
		}
		return out[i].Name < out[j].Name
	})

	slog.Debug("listed resources",
		"kind", kind,
		"namespace", ns,
		"count", len(out))

	return out, nil
}

// GetResource returns one resource. A missing resource is NOT_FOUND.
func (a *Adapter) GetResource(ctx context.Context, kind, name, namespace string) (*ResourceDetail, error) {
	k, obj, err := a.get(ctx, kind, name, namespace)
	if err != nil {
		return nil, err
	}
	d, err := describe(k, obj, a.now())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to describe resource", err)
	}
	return d, nil
}

func (a *Adapter) get(ctx context.Context, kind, name, namespace string) (Kind, runtime.Object, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return "", nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "resource name is required")
	}
	ns := resolveNamespace(k, namespace)

	var obj runtime.Object
	err = a.call(ctx, "get "+string(k), map[string]any{"kind": k, "name": name, "namespace": ns}, func(ctx context.Context) error {
		var gerr error
		obj, gerr = handlers[k].get(ctx, a.client, ns, name)
		return gerr
	})
	if err != nil {
		return "", nil, err
	}
	return k, obj, nil
}

// GetLogs returns the tail of a pod's container log. A missing pod is NOT_FOUND.
func (a *Adapter) GetLogs(ctx context.Context, opts LogOptions) (string, error) {
	tail := opts.TailLines
	switch {
	case tail <= 0:
		tail = defaults.LogTailLines
	case tail > defaults.LogMaxTailLines:
		tail = defaults.LogMaxTailLines
	}

	_, obj, err := a.get(ctx, string(KindPod), opts.Pod, opts.Namespace)
	if err != nil {
		return "", err
	}
	pod := obj.(*corev1.Pod)

	container := opts.Container
	if container == "" && len(pod.Spec.Containers) > 0 {
		container = pod.Spec.Containers[0].Name
	}
	if container != "" && !hasContainer(pod, container) {
		return "", apperrors.NewWithContext(apperrors.ErrCodeNotFound,
			fmt.Sprintf("container %q not found in pod %q", container, pod.Name),
			map[string]any{"containers": containerNames(pod)})
	}

	logOpts := &corev1.PodLogOptions{
		Container: container,
		TailLines: ptr.To(tail),
		Previous:  opts.Previous,
	}

	var raw []byte
	err = a.call(ctx, "get logs", map[string]any{"kind": KindPod, "name": pod.Name, "namespace": pod.Namespace}, func(ctx context.Context) error {
		var lerr error
		raw, lerr = a.client.CoreV1().Pods(pod.Namespace).GetLogs(pod.Name, logOpts).DoRaw(ctx)
		return lerr
	})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func hasContainer(p *corev1.Pod, name string) bool {
	for _, c := range p.Spec.Containers {
		if c.Name == name {
			return true
		}
	}
	for _, c := range p.Spec.InitContainers {
		if c.Name == name {
			return true
		}
	}
	return false
}

func containerNames(p *corev1.Pod) []string {
	names := make([]string, 0, len(p.Spec.Containers))
	for _, c := range p.Spec.Containers {
		names = append(names, c.Name)
	}
	return names
}
