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
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cluster-query-agent/pkg/api"
	"github.com/NVIDIA/cluster-query-agent/pkg/serializer"
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}

	serverFlag = &cli.StringFlag{
		Name:    "server",
		Aliases: []string{"s"},
		Usage:   "cqad base URL; when set, questions are answered remotely",
		Sources: cli.EnvVars("CQA_SERVER"),
	}

	modelFlag = &cli.StringFlag{
		Name:    "model",
		Aliases: []string{"m"},
		Usage:   "oracle model name",
		Sources: cli.EnvVars("CQA_MODEL"),
	}

	baseURLFlag = &cli.StringFlag{
		Name:    "openai-base-url",
		Usage:   "OpenAI-compatible API endpoint",
		Sources: cli.EnvVars("OPENAI_BASE_URL"),
	}
)

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", outFormat)
	}
	return outFormat, nil
}

// settingsFromCmd loads settings and applies flags the user set explicitly.
func settingsFromCmd(cmd *cli.Command) (*api.Settings, error) {
	s, err := api.LoadSettings(cmd.String("config"), cmd.String("kubeconfig"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("model") {
		s.Oracle.Model = cmd.String("model")
	}
	if cmd.IsSet("openai-base-url") {
		s.Oracle.BaseURL = cmd.String("openai-base-url")
	}
	if cmd.IsSet("max-iterations") {
		s.Agent.MaxIterations = cmd.Int("max-iterations")
	}
	if cmd.IsSet("timeout") {
		s.Agent.QuestionTimeout = cmd.Duration("timeout")
	}
	if cmd.IsSet("port") {
		s.Server.Port = cmd.Int("port")
	}
	return s, nil
}

// writeResult serializes v to the --output destination.
func writeResult(ctx context.Context, cmd *cli.Command, format serializer.Format, v any) error {
	ser := serializer.NewFileWriterOrStdout(format, cmd.String("output"))
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()

	return ser.Serialize(ctx, v)
}
