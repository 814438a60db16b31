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

package agent

import "context"

type contextKey string

const contextKeyQuestionID contextKey = "questionID"

// WithQuestionID returns a context that makes Ask use id as the question ID,
// typically the HTTP request ID.
func WithQuestionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKeyQuestionID, id)
}

func questionIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyQuestionID).(string)
	return id
}
