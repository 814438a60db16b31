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

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cluster-query-agent/pkg/api"
	"github.com/NVIDIA/cluster-query-agent/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the query agent HTTP server",
		Description: `Serve POST /query-agent and GET /v1/tools until interrupted.
Equivalent to running cqad with the same settings.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   server.DefaultPort,
				Usage:   "Listen port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.BoolFlag{
				Name:  "check-cluster",
				Usage: "Report not ready while the Kubernetes API is unreachable",
			},
			modelFlag,
			baseURLFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := settingsFromCmd(cmd)
			if err != nil {
				return err
			}
			if cmd.IsSet("check-cluster") {
				s.Server.CheckCluster = cmd.Bool("check-cluster")
			}
			return api.ServeWithSettings(ctx, *s)
		},
	}
}
