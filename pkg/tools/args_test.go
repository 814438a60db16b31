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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgs(t *testing.T) {
	args := map[string]any{
		"name":    "  web  ",
		"blank":   " ",
		"num":     float64(42),
		"jsonNum": json.Number("7"),
		"flag":    true,
		"wrong":   12,
	}

	s, err := requiredString(args, "name")
	require.NoError(t, err)
	assert.Equal(t, "web", s)

	_, err = requiredString(args, "blank")
	assert.Error(t, err)
	_, err = requiredString(args, "missing")
	assert.Error(t, err)

	s, err = optionalString(args, "missing")
	require.NoError(t, err)
	assert.Empty(t, s)
	_, err = optionalString(args, "wrong")
	assert.Error(t, err)

	n, err := optionalInt(args, "num", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	n, err = optionalInt(args, "jsonNum", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	n, err = optionalInt(args, "missing", 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), n)
	_, err = optionalInt(args, "name", 1)
	assert.Error(t, err)

	b, err := optionalBool(args, "flag")
	require.NoError(t, err)
	assert.True(t, b)
	_, err = optionalBool(args, "name")
	assert.Error(t, err)
}
