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
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/cluster-query-agent/pkg/api"
	"github.com/NVIDIA/cluster-query-agent/pkg/defaults"
	"github.com/NVIDIA/cluster-query-agent/pkg/query"
	"github.com/NVIDIA/cluster-query-agent/pkg/serializer"
)

// askFunc answers a single question.
type askFunc func(ctx context.Context, question string) (query.Response, error)

func askCmd() *cli.Command {
	return &cli.Command{
		Name:                  "ask",
		EnableShellCompletion: true,
		Usage:                 "Answer questions about the cluster",
		ArgsUsage:             "QUESTION [QUESTION...]",
		Description: `Answer one or more natural language questions about the cluster.

Without --server the agent runs in-process using the current kubeconfig and
OPENAI_API_KEY. With --server the questions are posted to a running cqad.

Questions that cannot be answered yield "unknown" and still exit 0.

# Examples

  cqa ask "How many nodes are in the cluster?"
  cqa ask -t table "How many pods are in kube-system?" "Which deployment owns web-7d9c8b6f5d-x2k4q?"
  cqa ask --server http://localhost:8000 --verbose "What is the status of example-pod?"`,
		Flags: []cli.Flag{
			serverFlag,
			modelFlag,
			baseURLFlag,
			&cli.IntFlag{
				Name:  "max-iterations",
				Value: defaults.MaxIterations,
				Usage: "Ceiling on oracle decisions per question",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: defaults.QuestionTimeout,
				Usage: "Time budget per question",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Value: 4,
				Usage: "Maximum questions answered at once",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Include the loop's terminal state and reason",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			questions := questionsFromArgs(cmd.Args().Slice())
			if len(questions) == 0 {
				return fmt.Errorf("at least one question is required")
			}

			ask, err := newAsker(cmd)
			if err != nil {
				return err
			}

			responses, err := askAll(ctx, ask, questions, cmd.Int("concurrency"))
			if err != nil {
				return err
			}

			if len(responses) == 1 {
				return writeResult(ctx, cmd, outFormat, responses[0])
			}
			return writeResult(ctx, cmd, outFormat, query.Responses(responses))
		},
	}
}

func questionsFromArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// newAsker answers remotely when --server is set, in-process otherwise.
func newAsker(cmd *cli.Command) (askFunc, error) {
	verbose := cmd.Bool("verbose")

	if base := strings.TrimSpace(cmd.String("server")); base != "" {
		// The server applies its own question timeout; allow for transport.
		return remoteAsker(base, verbose, cmd.Duration("timeout")+defaults.HTTPClientTimeout), nil
	}

	s, err := settingsFromCmd(cmd)
	if err != nil {
		return nil, err
	}
	a, _, err := api.NewAgent(*s)
	if err != nil {
		return nil, fmt.Errorf("failed to build agent: %w", err)
	}

	return func(ctx context.Context, question string) (query.Response, error) {
		res, err := a.Ask(ctx, question)
		if err != nil {
			return query.Response{}, err
		}
		return query.NewResponse(res, verbose), nil
	}, nil
}

func remoteAsker(base string, verbose bool, timeout time.Duration) askFunc {
	c := serializer.NewHTTPClient(
		serializer.WithUserAgent(name+"/"+version),
		serializer.WithTotalTimeout(timeout),
	)

	endpoint := strings.TrimRight(base, "/") + "/query-agent"
	if verbose {
		endpoint += "?verbose=true"
	}

	return func(ctx context.Context, question string) (query.Response, error) {
		var resp query.Response
		if err := c.PostJSON(ctx, endpoint, query.Request{Question: question}, &resp); err != nil {
			return query.Response{}, fmt.Errorf("remote query failed: %w", err)
		}
		return resp, nil
	}
}

// askAll answers questions concurrently, preserving their order. The first
// error cancels the remaining questions.
func askAll(ctx context.Context, ask askFunc, questions []string, concurrency int) ([]query.Response, error) {
	out := make([]query.Response, len(questions))

	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, q := range questions {
		g.Go(func() error {
			resp, err := ask(gctx, q)
			if err != nil {
				return fmt.Errorf("question %q: %w", q, err)
			}
			out[i] = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
