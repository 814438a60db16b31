package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/NVIDIA/cluster-query-agent/pkg/cluster"
	"github.com/NVIDIA/cluster-query-agent/pkg/defaults"
	apperrors "github.com/NVIDIA/cluster-query-agent/pkg/errors"
)

// ListResult is the data returned by list_resources.
type ListResult struct {
	Kind      cluster.Kind              `json:"kind"`
	Namespace string                    `json:"namespace,omitempty"`
	Count     int                       `json:"count"`
	Items     []cluster.ResourceSummary `json:"items"`
}

// OwnersResult is the data returned by get_owners.
type OwnersResult struct {
	Owners   []cluster.OwnerRef `json:"owners"`
	Workload *cluster.OwnerRef  `json:"workload,omitempty"`
}

// Dispatch executes an invocation against the cluster. It never returns an
// error: unknown tools, schema violations and cluster failures all come back
// as an Observation carrying an error code.
func (r *Registry) Dispatch(ctx context.Context, inv Invocation) Observation {
	start := time.Now()
	obs := r.dispatch(ctx, inv)

	code := "OK"
	if obs.Err != nil {
		code = string(obs.Err.Code)
	}
	toolInvocationsTotal.WithLabelValues(metricTool(inv.Tool, r), code).Inc()
	toolDuration.WithLabelValues(metricTool(inv.Tool, r)).Observe(time.Since(start).Seconds())

	slog.Debug("tool dispatched",
		"tool", inv.Tool,
		"callID", inv.CallID,
		"code", code,
		"bytes", len(obs.Text),
		"truncated", obs.Truncated,
		"duration", time.Since(start))

	return obs
}

func (r *Registry) dispatch(ctx context.Context, inv Invocation) Observation {
	if err := r.Validate(&inv); err != nil {
		return ErrorObservation(inv, err)
	}
	spec := r.byName[inv.Tool]
	if spec.Terminal() {
		return ErrorObservation(inv, apperrors.New(apperrors.ErrCodeMalformedInvocation,
			fmt.Sprintf("%s ends the conversation and cannot be dispatched", inv.Tool)))
	}

	data, err := spec.handler(ctx, r.cluster, inv.Args)
	if err != nil {
		return ErrorObservation(inv, err)
	}

	if expr, _ := optionalString(inv.Args, "filter"); expr != "" {
		if data, err = applyFilter(ctx, expr, data); err != nil {
			return ErrorObservation(inv, err)
		}
	}

	text, err := render(data)
	if err != nil {
		return ErrorObservation(inv, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to render result", err))
	}
	text, truncated := truncate(text, r.maxBytes)

	return Observation{
		Tool:      inv.Tool,
		Args:      inv.Args,
		Data:      data,
		Text:      text,
		Truncated: truncated,
	}
}

// metricTool bounds label cardinality to registered tool names.
func metricTool(name string, r *Registry) string {
	if _, ok := r.byName[name]; ok {
		return name
	}
	return "unknown"
}

func invalidArgs(err error) error {
	return apperrors.Wrap(apperrors.ErrCodeMalformedInvocation, "invalid arguments", err)
}

func listResources(ctx context.Context, c Cluster, args map[string]any) (any, error) {
	kind, err := requiredString(args, "kind")
	if err != nil {
		return nil, invalidArgs(err)
	}
	ns, err := optionalString(args, "namespace")
	if err != nil {
		return nil, invalidArgs(err)
	}
	all, err := optionalBool(args, "all_namespaces")
	if err != nil {
		return nil, invalidArgs(err)
	}
	selector, err := optionalString(args, "label_selector")
	if err != nil {
		return nil, invalidArgs(err)
	}

	items, err := c.ListResources(ctx, cluster.ListOptions{
		Kind:          kind,
		Namespace:     ns,
		AllNamespaces: all,
		LabelSelector: selector,
	})
	if err != nil {
		return nil, err
	}

	res := ListResult{Count: len(items), Items: items}
	if k, perr := cluster.ParseKind(kind); perr == nil {
		res.Kind = k
		switch {
		case all || !k.Namespaced():
		case ns == "":
			res.Namespace = cluster.DefaultNamespace
		default:
			res.Namespace = ns
		}
	}
	return res, nil
}

func getResource(ctx context.Context, c Cluster, args map[string]any) (any, error) {
	kind, err := requiredString(args, "kind")
	if err != nil {
		return nil, invalidArgs(err)
	}
	name, err := requiredString(args, "name")
	if err != nil {
		return nil, invalidArgs(err)
	}
	ns, err := optionalString(args, "namespace")
	if err != nil {
		return nil, invalidArgs(err)
	}
	return c.GetResource(ctx, kind, name, ns)
}

func getLogs(ctx context.Context, c Cluster, args map[string]any) (any, error) {
	pod, err := requiredString(args, "pod")
	if err != nil {
		return nil, invalidArgs(err)
	}
	ns, err := optionalString(args, "namespace")
	if err != nil {
		return nil, invalidArgs(err)
	}
	container, err := optionalString(args, "container")
	if err != nil {
		return nil, invalidArgs(err)
	}
	tail, err := optionalInt(args, "tail_lines", defaults.LogTailLines)
	if err != nil {
		return nil, invalidArgs(err)
	}
	previous, err := optionalBool(args, "previous")
	if err != nil {
		return nil, invalidArgs(err)
	}

	return c.GetLogs(ctx, cluster.LogOptions{
		Pod:       pod,
		Namespace: ns,
		Container: container,
		TailLines: tail,
		Previous:  previous,
	})
}

func getOwners(ctx context.Context, c Cluster, args map[string]any) (any, error) {
	kind, err := requiredString(args, "kind")
	if err != nil {
		return nil, invalidArgs(err)
	}
	name, err := requiredString(args, "name")
	if err != nil {
		return nil, invalidArgs(err)
	}
	ns, err := optionalString(args, "namespace")
	if err != nil {
		return nil, invalidArgs(err)
	}

	owners, err := c.GetOwnersOf(ctx, kind, name, ns)
	if err != nil {
		return nil, err
	}
	res := OwnersResult{Owners: owners}
	if len(owners) > 0 {
		// Best effort: a failed walk still leaves the direct owners useful.
		if w, werr := c.ResolveWorkload(ctx, kind, name, ns); werr == nil {
			res.Workload = w
		}
	}
	return res, nil
}
