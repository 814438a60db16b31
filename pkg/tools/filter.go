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

package tools

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/itchyny/gojq"

	apperrors "github.com/NVIDIA/cluster-query-agent/pkg/errors"
)

// maxFilterResults bounds the number of values a filter may emit.
const maxFilterResults = 1000

// applyFilter evaluates a jq expression over the JSON form of data. A single
// result is returned as is; several results are returned as a slice.
func applyFilter(ctx context.Context, expr string, data any) (any, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeMalformedInvocation,
			fmt.Sprintf("invalid jq filter %q", expr), err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeMalformedInvocation,
			fmt.Sprintf("invalid jq filter %q", expr), err)
	}

	input, err := toJSONValue(data)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to prepare filter input", err)
	}

	results := make([]any, 0, 1)
	iter := code.RunWithContext(ctx, input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			var halt *gojq.HaltError
			if stderrors.As(err, &halt) && halt.Value() == nil {
				break
			}
			return nil, apperrors.Wrap(apperrors.ErrCodeMalformedInvocation,
				fmt.Sprintf("jq filter %q failed", expr), err)
		}
		if len(results) == maxFilterResults {
			break
		}
		results = append(results, v)
	}

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}

// toJSONValue converts typed results into the generic maps and slices gojq
// operates on.
func toJSONValue(data any) (any, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
