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
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cluster-query-agent/pkg/api"
	"github.com/NVIDIA/cluster-query-agent/pkg/query"
	"github.com/NVIDIA/cluster-query-agent/pkg/serializer"
)

func toolsCmd() *cli.Command {
	return &cli.Command{
		Name:  "tools",
		Usage: "List the tools the oracle may invoke",
		Description: `List the read-only tool catalog with parameter names. Required
parameters are marked with '*'. Use --format json for full parameter schemas.`,
		Flags: []cli.Flag{
			serverFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			catalog, err := loadCatalog(ctx, cmd)
			if err != nil {
				return err
			}
			return writeResult(ctx, cmd, outFormat, catalog)
		},
	}
}

func loadCatalog(ctx context.Context, cmd *cli.Command) (*query.Catalog, error) {
	if base := strings.TrimSpace(cmd.String("server")); base != "" {
		var c query.Catalog
		if err := serializer.NewHTTPClient().GetJSON(ctx, strings.TrimRight(base, "/")+"/v1/tools", &c); err != nil {
			return nil, fmt.Errorf("failed to fetch tool catalog: %w", err)
		}
		return &c, nil
	}

	s, err := settingsFromCmd(cmd)
	if err != nil {
		return nil, err
	}
	reg, err := api.NewRegistry(*s)
	if err != nil {
		return nil, fmt.Errorf("failed to build tool registry: %w", err)
	}
	return &query.Catalog{Tools: reg.Catalog()}, nil
}
