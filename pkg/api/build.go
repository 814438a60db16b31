package api

import (
	"context"
	"fmt"
	"net/http"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/NVIDIA/cluster-query-agent/pkg/agent"
	"github.com/NVIDIA/cluster-query-agent/pkg/cluster"
	"github.com/NVIDIA/cluster-query-agent/pkg/defaults"
	apperrors "github.com/NVIDIA/cluster-query-agent/pkg/errors"
	"github.com/NVIDIA/cluster-query-agent/pkg/k8s/client"
	"github.com/NVIDIA/cluster-query-agent/pkg/oracle"
	"github.com/NVIDIA/cluster-query-agent/pkg/server"
	"github.com/NVIDIA/cluster-query-agent/pkg/tools"
)

// NewAgent builds the agent against the configured cluster and oracle.
// The clientset is returned for readiness checks.
func NewAgent(s Settings) (*agent.Agent, client.Interface, error) {
	o, err := oracle.NewOpenAI(s.Oracle)
	if err != nil {
		return nil, nil, err
	}

	cs, err := newClient(s)
	if err != nil {
		return nil, nil, err
	}

	a, err := newAgent(cs, o, s)
	if err != nil {
		return nil, nil, err
	}
	return a, cs, nil
}

// NewRegistry builds the tool registry alone, for listing the catalog.
func NewRegistry(s Settings) (*tools.Registry, error) {
	cs, err := newClient(s)
	if err != nil {
		return nil, err
	}
	return newRegistry(cs, s)
}

func newClient(s Settings) (client.Interface, error) {
	cs, _, err := client.GetKubeClientWithConfig(s.Kubeconfig)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to build kubernetes client", err)
	}
	return cs, nil
}

func newRegistry(cs client.Interface, s Settings) (*tools.Registry, error) {
	adapter := cluster.NewAdapter(cs, cluster.WithCallTimeout(s.Cluster.CallTimeout))
	return tools.NewRegistry(adapter, tools.WithObservationLimit(s.Tools.ObservationMaxBytes))
}

func newAgent(cs client.Interface, o oracle.Oracle, s Settings) (*agent.Agent, error) {
	reg, err := newRegistry(cs, s)
	if err != nil {
		return nil, fmt.Errorf("failed to build tool registry: %w", err)
	}
	return agent.New(o, reg, agent.WithConfig(s.Agent))
}

// clusterReadiness reports the cluster ready once the API server answers a
// minimal list.
func clusterReadiness(cs client.Interface) server.ReadinessCheck {
	return func(r *http.Request) error {
		ctx, cancel := context.WithTimeout(r.Context(), defaults.K8sCallTimeout)
		defer cancel()
		if _, err := cs.CoreV1().Namespaces().List(ctx, metav1.ListOptions{Limit: 1}); err != nil {
			return fmt.Errorf("kubernetes API unreachable: %w", err)
		}
		return nil
	}
}
