// Package cli implements the cqa command-line interface.
//
// # Overview
//
// cqa answers natural language questions about a Kubernetes cluster. It
// either runs the agent loop in-process against the current kubeconfig or
// forwards questions to a running cqad server.
//
// # Commands
//
// ask - Answer one or more questions:
//
//	cqa ask "How many nodes are in the cluster?"
//	cqa ask --server http://cqad:8000 "What is the status of example-pod?"
//
// Several questions are answered concurrently, bounded by --concurrency.
//
// tools - List the tool catalog offered to the oracle:
//
//	cqa tools --format table
//
// serve - Run the HTTP server in the foreground, equivalent to cqad:
//
//	cqa serve --port 8000
//
// # Global Flags
//
//	--config       settings document: file, URL or cm://namespace/name
//	--kubeconfig   kubeconfig path (default: KUBECONFIG, ~/.kube/config, in-cluster)
//	--log-level    debug, info, warn, error (default: warn)
//
// # Output Formats
//
// Results are written as YAML (default), JSON, or a table, to stdout or
// the file named by --output.
//
// # Environment Variables
//
//	OPENAI_API_KEY   oracle credential
//	OPENAI_BASE_URL  OpenAI-compatible endpoint
//	CQA_MODEL        model name
//	CQA_SERVER       cqad base URL for remote asks
//	LOG_LEVEL        logging verbosity
//
// A .env file in the working directory is loaded before flags are parsed.
//
// # Exit Codes
//
//	0  Success, including questions answered with "unknown"
//	1  General error (invalid arguments, execution failure)
//	2  Context canceled
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/cluster-query-agent/pkg/cli.version=1.0.0'"
package cli
