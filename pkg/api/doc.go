// Package api wires the query agent into the HTTP server.
//
// It assembles the stack shared by the cqad daemon and the cqa CLI: the
// kubernetes clientset, the read-only resource adapter, the tool registry,
// the OpenAI-compatible oracle and the agent loop. Serve then mounts the
// query endpoints on pkg/server.
//
// # Usage
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Configuration
//
// Settings start from DefaultSettings, are overlaid by the optional
// document named in CQA_CONFIG (file path, URL or cm://namespace/name),
// and finally by environment variables:
//
//	OPENAI_API_KEY   oracle credential (required)
//	OPENAI_BASE_URL  OpenAI-compatible endpoint
//	CQA_MODEL        model name (default gpt-4o)
//	KUBECONFIG       kubeconfig path, in-cluster config when unset
//	PORT             listen port (default 8000)
//	LOG_LEVEL        debug, info, warn or error
//	LOG_FILE         optional rotating log file
//
// A .env file in the working directory is loaded first.
//
// Example document:
//
//	kind: AgentSettings
//	apiVersion: cqa.nvidia.com/v1alpha1
//	kubeconfig: /etc/cqa/kubeconfig
//	server:
//	  checkCluster: true
//	agent:
//	  maxIterations: 6
//	  questionTimeout: 45s
//	oracle:
//	  model: gpt-4o-mini
//	  timeout: 20s
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/cluster-query-agent/pkg/api.version=1.0.0'"
package api
