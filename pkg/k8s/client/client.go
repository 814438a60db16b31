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

package client

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"

	"github.com/NVIDIA/cluster-query-agent/pkg/defaults"
)

// UserAgent identifies the agent in API server audit logs.
const UserAgent = "cluster-query-agent"

// Interface is an alias for kubernetes.Interface so callers can pass fake clientsets.
type Interface = kubernetes.Interface

var (
	clientOnce   sync.Once
	cachedClient *kubernetes.Clientset
	cachedConfig *rest.Config
	clientErr    error
)

// GetKubeClient returns a process-wide client, creating it on first call.
//
// Configuration is discovered from:
//   - KUBECONFIG environment variable
//   - ~/.kube/config (default location)
//   - In-cluster service account (when running as a Pod)
func GetKubeClient() (Interface, *rest.Config, error) {
	clientOnce.Do(func() {
		cachedClient, cachedConfig, clientErr = BuildKubeClient("")
	})
	return cachedClient, cachedConfig, clientErr
}

// BuildKubeClient creates a client from the given kubeconfig path, bypassing
// the singleton. An empty path falls back to KUBECONFIG, ~/.kube/config and
// finally the in-cluster configuration.
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	config, err := BuildRestConfig(kubeconfig)
	if err != nil {
		return nil, nil, err
	}

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return client, config, nil
}

// BuildRestConfig resolves the rest configuration and applies the agent's
// client-side rate limits and user agent.
func BuildRestConfig(kubeconfig string) (*rest.Config, error) {
	kubeconfig = resolveKubeconfigPath(kubeconfig)

	var config *rest.Config
	var err error

	// InClusterConfig directly avoids the "Neither --kubeconfig nor --master" warning.
	if kubeconfig == "" {
		config, err = rest.InClusterConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
	} else {
		config, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("failed to build kube config from %s: %w", kubeconfig, err)
		}
	}

	config.QPS = defaults.K8sClientQPS
	config.Burst = defaults.K8sClientBurst
	config.Timeout = defaults.K8sCallTimeout
	config = rest.AddUserAgent(config, UserAgent)

	return config, nil
}

// GetKubeClientWithConfig returns a client for an explicit kubeconfig path,
// or the shared singleton when the path is empty.
func GetKubeClientWithConfig(kubeconfig string) (Interface, *rest.Config, error) {
	if kubeconfig == "" {
		return GetKubeClient()
	}
	return BuildKubeClient(kubeconfig)
}

func resolveKubeconfigPath(kubeconfig string) string {
	if kubeconfig != "" {
		return kubeconfig
	}
	if env := os.Getenv("KUBECONFIG"); env != "" {
		return env
	}
	home := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(home); err == nil {
		return home
	}
	return ""
}
