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

package oracle

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/NVIDIA/cluster-query-agent/pkg/defaults"
	apperrors "github.com/NVIDIA/cluster-query-agent/pkg/errors"
	"github.com/NVIDIA/cluster-query-agent/pkg/normalize"
	"github.com/NVIDIA/cluster-query-agent/pkg/tools"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o"

	// DefaultTemperature keeps tool selection close to deterministic.
	DefaultTemperature = 0.1
)

// Config configures the OpenAI-compatible oracle.
type Config struct {
	APIKey      string  `yaml:"-"`
	BaseURL     string  `yaml:"baseURL,omitempty"`
	Model       string  `yaml:"model,omitempty"`
	Temperature float64 `yaml:"temperature,omitempty"`
	// Timeout bounds a single chat completion call.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// OpenAI is an Oracle backed by an OpenAI-compatible chat completions API.
// It holds no per-question state and is safe for concurrent use.
type OpenAI struct {
	client      openai.Client
	model       string
	temperature float64
	timeout     time.Duration
}

// NewOpenAI returns an OpenAI oracle. The API key is required.
func NewOpenAI(cfg Config) (*OpenAI, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "an OpenAI API key is required (OPENAI_API_KEY)")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// The agent loop owns the retry policy.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	o := &OpenAI{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}
	if o.model == "" {
		o.model = DefaultModel
	}
	if o.temperature <= 0 {
		o.temperature = DefaultTemperature
	}
	if o.timeout <= 0 {
		o.timeout = defaults.OracleCallTimeout
	}
	return o, nil
}

// Model returns the configured model name.
func (o *OpenAI) Model() string {
	return o.model
}

// Decide implements Oracle.
func (o *OpenAI) Decide(ctx context.Context, req Request) (Decision, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(o.model),
		Messages:    buildMessages(req),
		Tools:       buildTools(req.Tools),
		Temperature: openai.Float(o.temperature),
	}
	if len(params.Tools) > 0 {
		params.ToolChoice = openai.ChatCompletionToolChoiceOptionUnionParam{
			OfAuto: openai.String("required"),
		}
	}

	start := time.Now()
	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return Decision{}, classify(err)
	}

	slog.Debug("oracle responded",
		"model", o.model,
		"iteration", req.Iteration,
		"promptTokens", resp.Usage.PromptTokens,
		"completionTokens", resp.Usage.CompletionTokens,
		"duration", time.Since(start))

	if len(resp.Choices) == 0 {
		return Decision{Kind: DecisionEmpty}, nil
	}
	msg := resp.Choices[0].Message

	for _, tc := range msg.ToolCalls {
		if tc.Function.Name == "" {
			continue
		}
		args, err := decodeArgs(tc.Function.Arguments)
		if err != nil {
			// Unparseable arguments surface to the loop as a malformed call.
			return ToolCall(tc.Function.Name, map[string]any{"_raw": tc.Function.Arguments}, tc.ID), nil
		}
		return FromToolCall(tc.Function.Name, args, tc.ID), nil
	}

	if text := strings.TrimSpace(msg.Content); text != "" {
		return FinalAnswer(text, normalize.ShapeAuto), nil
	}
	return Decision{Kind: DecisionEmpty}, nil
}

func classify(err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.ErrCodeOracleUnavailable, "oracle call timed out", err)
	}
	var apiErr *openai.Error
	if stderrors.As(err, &apiErr) {
		return apperrors.WrapWithContext(apperrors.ErrCodeOracleUnavailable,
			fmt.Sprintf("oracle returned HTTP %d", apiErr.StatusCode), err,
			map[string]any{"status": apiErr.StatusCode})
	}
	return apperrors.Wrap(apperrors.ErrCodeOracleUnavailable, "oracle call failed", err)
}

func decodeArgs(raw string) (map[string]any, error) {
	args := map[string]any{}
	if strings.TrimSpace(raw) == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, err
	}
	return args, nil
}

func buildTools(specs []tools.Spec) []openai.ChatCompletionToolUnionParam {
	out := make([]openai.ChatCompletionToolUnionParam, 0, len(specs))
	for _, s := range specs {
		out = append(out, openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        s.Name,
			Description: openai.String(s.Description),
			Parameters:  schemaParameters(s),
		}))
	}
	return out
}

// schemaParameters converts a tool schema into the generic map the API expects.
func schemaParameters(s tools.Spec) openai.FunctionParameters {
	params := openai.FunctionParameters{"type": "object", "properties": map[string]any{}}
	if s.Parameters == nil {
		return params
	}
	b, err := json.Marshal(s.Parameters)
	if err != nil {
		return params
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return params
	}
	return openai.FunctionParameters(m)
}

func buildMessages(req Request) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, 2+2*len(req.Transcript))
	msgs = append(msgs,
		openai.SystemMessage(SystemPrompt(req.Iteration, req.MaxIterations)),
		openai.UserMessage(req.Question),
	)

	for i, step := range req.Transcript {
		callID := step.Invocation.CallID
		if callID == "" {
			callID = fmt.Sprintf("call_%d", i+1)
		}
		args, err := json.Marshal(step.Invocation.Args)
		if err != nil || step.Invocation.Args == nil {
			args = []byte("{}")
		}

		msgs = append(msgs,
			openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					ToolCalls: []openai.ChatCompletionMessageToolCallUnionParam{{
						OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
							ID: callID,
							Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
								Name:      step.Invocation.Tool,
								Arguments: string(args),
							},
						},
					}},
				},
			},
			openai.ToolMessage(step.Observation.Text, callID),
		)
	}
	return msgs
}
