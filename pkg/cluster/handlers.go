package cluster

import (
	"context"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes"
)

type listFunc func(ctx context.Context, c kubernetes.Interface, ns string, opts metav1.ListOptions) ([]runtime.Object, error)

type getFunc func(ctx context.Context, c kubernetes.Interface, ns, name string) (runtime.Object, error)

type kindHandler struct {
	namespaced bool
	list       listFunc
	get        getFunc
}

// objects converts a typed item slice into runtime objects pointing into it.
func objects[T any, P interface {
	*T
	runtime.Object
}](items []T) []runtime.Object {
	out := make([]runtime.Object, 0, len(items))
	for i := range items {
		out = append(out, P(&items[i]))
	}
	return out
}

var handlers = map[Kind]kindHandler{
	KindPod: {
		namespaced: true,
		list: func(ctx context.Context, c kubernetes.Interface, ns string, o metav1.ListOptions) ([]runtime.Object, error) {
			l, err := c.CoreV1().Pods(ns).List(ctx, o)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		},
		get: func(ctx context.Context, c kubernetes.Interface, ns, name string) (runtime.Object, error) {
			return c.CoreV1().Pods(ns).Get(ctx, name, metav1.GetOptions{})
		},
	},
	KindDeployment: {
		namespaced: true,
		list: func(ctx context.Context, c kubernetes.Interface, ns string, o metav1.ListOptions) ([]runtime.Object, error) {
			l, err := c.AppsV1().Deployments(ns).List(ctx, o)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		},
		get: func(ctx context.Context, c kubernetes.Interface, ns, name string) (runtime.Object, error) {
			return c.AppsV1().Deployments(ns).Get(ctx, name, metav1.GetOptions{})
		},
	},
	KindReplicaSet: {
		namespaced: true,
		list: func(ctx context.Context, c kubernetes.Interface, ns string, o metav1.ListOptions) ([]runtime.Object, error) {
			l, err := c.AppsV1().ReplicaSets(ns).List(ctx, o)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		},
		get: func(ctx context.Context, c kubernetes.Interface, ns, name string) (runtime.Object, error) {
			return c.AppsV1().ReplicaSets(ns).Get(ctx, name, metav1.GetOptions{})
		},
	},
	KindStatefulSet: {
		namespaced: true,
		list: func(ctx context.Context, c kubernetes.Interface, ns string, o metav1.ListOptions) ([]runtime.Object, error) {
			l, err := c.AppsV1().StatefulSets(ns).List(ctx, o)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		},
		get: func(ctx context.Context, c kubernetes.Interface, ns, name string) (runtime.Object, error) {
			return c.AppsV1().StatefulSets(ns).Get(ctx, name, metav1.GetOptions{})
		},
	},
	KindDaemonSet: {
		namespaced: true,
		list: func(ctx context.Context, c kubernetes.Interface, ns string, o metav1.ListOptions) ([]runtime.Object, error) {
			l, err := c.AppsV1().DaemonSets(ns).List(ctx, o)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		},
		get: func(ctx context.Context, c kubernetes.Interface, ns, name string) (runtime.Object, error) {
			return c.AppsV1().DaemonSets(ns).Get(ctx, name, metav1.GetOptions{})
		},
	},
	KindJob: {
		namespaced: true,
		list: func(ctx context.Context, c kubernetes.Interface, ns string, o metav1.ListOptions) ([]runtime.Object, error) {
			l, err := c.BatchV1().Jobs(ns).List(ctx, o)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		},
		get: func(ctx context.Context, c kubernetes.Interface, ns, name string) (runtime.Object, error) {
			return c.BatchV1().Jobs(ns).Get(ctx, name, metav1.GetOptions{})
		},
	},
	KindCronJob: {
		namespaced: true,
		list: func(ctx context.Context, c kubernetes.Interface, ns string, o metav1.ListOptions) ([]runtime.Object, error) {
			l, err := c.BatchV1().CronJobs(ns).List(ctx, o)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		},
		get: func(ctx context.Context, c kubernetes.Interface, ns, name string) (runtime.Object, error) {
			return c.BatchV1().CronJobs(ns).Get(ctx, name, metav1.GetOptions{})
		},
	},
	KindService: {
		namespaced: true,
		list: func(ctx context.Context, c kubernetes.Interface, ns string, o metav1.ListOptions) ([]runtime.Object, error) {
			l, err := c.CoreV1().Services(ns).List(ctx, o)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		},
		get: func(ctx context.Context, c kubernetes.Interface, ns, name string) (runtime.Object, error) {
			return c.CoreV1().Services(ns).Get(ctx, name, metav1.GetOptions{})
		},
	},
	KindNode: {
		list: func(ctx context.Context, c kubernetes.Interface, _ string, o metav1.ListOptions) ([]runtime.Object, error) {
			l, err := c.CoreV1().Nodes().List(ctx, o)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		},
		get: func(ctx context.Context, c kubernetes.Interface, _, name string) (runtime.Object, error) {
			return c.CoreV1().Nodes().Get(ctx, name, metav1.GetOptions{})
		},
	},
	KindNamespace: {
		list: func(ctx context.Context, c kubernetes.Interface, _ string, o metav1.ListOptions) ([]runtime.Object, error) {
			l, err := c.CoreV1().Namespaces().List(ctx, o)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		},
		get: func(ctx context.Context, c kubernetes.Interface, _, name string) (runtime.Object, error) {
			return c.CoreV1().Namespaces().Get(ctx, name, metav1.GetOptions{})
		},
	},
	KindConfigMap: {
		namespaced: true,
		list: func(ctx context.Context, c kubernetes.Interface, ns string, o metav1.ListOptions) ([]runtime.Object, error) {
			l, err := c.CoreV1().ConfigMaps(ns).List(ctx, o)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		},
		get: func(ctx context.Context, c kubernetes.Interface, ns, name string) (runtime.Object, error) {
			return c.CoreV1().ConfigMaps(ns).Get(ctx, name, metav1.GetOptions{})
		},
	},
	KindPersistentVolumeClaim: {
		namespaced: true,
		list: func(ctx context.Context, c kubernetes.Interface, ns string, o metav1.ListOptions) ([]runtime.Object, error) {
			l, err := c.CoreV1().PersistentVolumeClaims(ns).List(ctx, o)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		},
		get: func(ctx context.Context, c kubernetes.Interface, ns, name string) (runtime.Object, error) {
			return c.CoreV1().PersistentVolumeClaims(ns).Get(ctx, name, metav1.GetOptions{})
		},
	},
	KindPersistentVolume: {
		list: func(ctx context.Context, c kubernetes.Interface, _ string, o metav1.ListOptions) ([]runtime.Object, error) {
			l, err := c.CoreV1().PersistentVolumes().List(ctx, o)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		},
		get: func(ctx context.Context, c kubernetes.Interface, _, name string) (runtime.Object, error) {
			return c.CoreV1().PersistentVolumes().Get(ctx, name, metav1.GetOptions{})
		},
	},
	KindIngress: {
		namespaced: true,
		list: func(ctx context.Context, c kubernetes.Interface, ns string, o metav1.ListOptions) ([]runtime.Object, error) {
			l, err := c.NetworkingV1().Ingresses(ns).List(ctx, o)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		},
		get: func(ctx context.Context, c kubernetes.Interface, ns, name string) (runtime.Object, error) {
			return c.NetworkingV1().Ingresses(ns).Get(ctx, name, metav1.GetOptions{})
		},
	},
	KindServiceAccount: {
		namespaced: true,
		list: func(ctx context.Context, c kubernetes.Interface, ns string, o metav1.ListOptions) ([]runtime.Object, error) {
			l, err := c.CoreV1().ServiceAccounts(ns).List(ctx, o)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		},
		get: func(ctx context.Context, c kubernetes.Interface, ns, name string) (runtime.Object, error) {
			return c.CoreV1().ServiceAccounts(ns).Get(ctx, name, metav1.GetOptions{})
		},
	},
	KindEvent: {
		namespaced: true,
		list: func(ctx context.Context, c kubernetes.Interface, ns string, o metav1.ListOptions) ([]runtime.Object, error) {
			l, err := c.CoreV1().Events(ns).List(ctx, o)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		},
		get: func(ctx context.Context, c kubernetes.Interface, ns, name string) (runtime.Object, error) {
			return c.CoreV1().Events(ns).Get(ctx, name, metav1.GetOptions{})
		},
	},
}
