package api

import (
	"context"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/NVIDIA/cluster-query-agent/pkg/k8s/client"
	"github.com/NVIDIA/cluster-query-agent/pkg/logging"
	"github.com/NVIDIA/cluster-query-agent/pkg/query"
	"github.com/NVIDIA/cluster-query-agent/pkg/server"
)

const (
	name           = "cqad"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/cluster-query-agent/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// It loads .env and settings, configures logging, builds the agent and
// handles graceful shutdown.
func Serve() error {
	ctx := context.Background()

	loadDotEnv()
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	s, err := LoadSettings(os.Getenv(EnvConfig), "")
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		return err
	}

	return ServeWithSettings(ctx, *s)
}

// ServeWithSettings builds the agent from s and serves until ctx is done
// or the process is signalled.
func ServeWithSettings(ctx context.Context, s Settings) error {
	a, cs, err := NewAgent(s)
	if err != nil {
		slog.Error("failed to build agent", "error", err)
		return err
	}

	srv := newServer(a, cs, s)
	if err := srv.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

func newServer(a query.Asker, cs client.Interface, s Settings) *server.Server {
	opts := []server.Option{
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(query.NewHandler(a).Routes()),
	}
	if s.Server.Port > 0 {
		opts = append(opts, server.WithPort(s.Server.Port))
	}
	if s.Server.CheckCluster {
		opts = append(opts, server.WithReadinessCheck("cluster", clusterReadiness(cs)))
	}
	return server.New(opts...)
}

// loadDotEnv loads .env from the working directory when present.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}
}
