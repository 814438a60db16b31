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

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/NVIDIA/cluster-query-agent/pkg/cluster"
	"github.com/NVIDIA/cluster-query-agent/pkg/defaults"
	"github.com/NVIDIA/cluster-query-agent/pkg/normalize"
	"github.com/NVIDIA/cluster-query-agent/pkg/oracle"
	"github.com/NVIDIA/cluster-query-agent/pkg/tools"
)

// unanswerablePrefixes mark oracle answers that admit there is no answer.
var unanswerablePrefixes = []string{
	"unknown",
	"not able to process",
	"unable to determine",
	"i don't know",
	"i do not know",
}

func isUnanswerable(answer string) bool {
	s := strings.ToLower(normalize.Clean(answer))
	if s == "" {
		return true
	}
	for _, p := range unanswerablePrefixes {
		if s == p || strings.HasPrefix(s, p+" ") || strings.HasPrefix(s, p+",") {
			return true
		}
	}
	return false
}

// finalAnswer normalizes the oracle's answer. Generated pod and ReplicaSet
// names seen in the transcript are replaced by their owning workload's name
// when the owner chain can be walked.
func (r *run) finalAnswer(ctx context.Context, d oracle.Decision) string {
	shape := d.Shape
	if shape == "" {
		shape = normalize.ShapeAuto
	}

	answer := normalize.Normalize(d.Answer, shape)
	if answer == "" {
		return defaults.UnknownAnswer
	}

	if r.agent.cfg.ResolveWorkloads && (shape == normalize.ShapeName || shape == normalize.ShapeAuto) {
		// Only when the normalized answer is that generated name.
		if raw, ok := normalize.GeneratedName(d.Answer); ok && normalize.StripGeneratedSuffix(raw) == answer {
			if name, ok := r.resolveWorkload(ctx, raw); ok {
				return name
			}
		}
	}
	return answer
}

func (r *run) resolveWorkload(ctx context.Context, name string) (string, bool) {
	if !normalize.HasGeneratedSuffix(name) {
		return "", false
	}
	ref, ok := findInTranscript(r.transcript, name)
	if !ok {
		return "", false
	}

	owner, err := r.agent.registry.Cluster().ResolveWorkload(ctx, string(ref.Kind), ref.Name, ref.Namespace)
	if err != nil {
		r.log.Debug("workload resolution failed", "name", name, "error", err)
		return "", false
	}
	if owner.Kind == ref.Kind && owner.Name == ref.Name {
		return "", false
	}
	r.log.Debug("resolved workload", "name", name, "workload", owner.Name, "kind", owner.Kind)
	return owner.Name, true
}

// findInTranscript locates the resource a name refers to among successful
// observations, most recent first.
func findInTranscript(transcript []oracle.Step, name string) (cluster.OwnerRef, bool) {
	for i := len(transcript) - 1; i >= 0; i-- {
		obs := transcript[i].Observation
		if obs.Failed() {
			continue
		}
		switch data := obs.Data.(type) {
		case tools.ListResult:
			for _, item := range data.Items {
				if item.Name == name {
					return cluster.OwnerRef{Kind: item.Kind, Name: item.Name, Namespace: item.Namespace}, true
				}
			}
		case *cluster.ResourceDetail:
			if data.Name == name {
				return cluster.OwnerRef{Kind: data.Kind, Name: data.Name, Namespace: data.Namespace}, true
			}
		}
	}
	return cluster.OwnerRef{}, false
}

// bestEffort derives an answer from the most recent successful observation.
func bestEffort(transcript []oracle.Step) string {
	for i := len(transcript) - 1; i >= 0; i-- {
		obs := transcript[i].Observation
		if obs.Failed() {
			continue
		}
		if answer, ok := answerFrom(obs.Data); ok {
			return answer
		}
	}
	return defaults.UnknownAnswer
}

func answerFrom(data any) (string, bool) {
	switch v := data.(type) {
	case nil:
		return "", false
	case string:
		s := normalize.Normalize(v, normalize.ShapeAuto)
		return s, s != ""
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			switch item.(type) {
			case string, bool, int, int64, float64:
				parts = append(parts, fmt.Sprint(item))
			default:
				return "", false
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		return normalize.Normalize(strings.Join(parts, ", "), normalize.ShapeList), true
	case tools.ListResult:
		return strconv.Itoa(v.Count), true
	case *cluster.ResourceDetail:
		if st, ok := normalize.Status(v.Reason); ok {
			return st, true
		}
		if v.Status != "" {
			return normalize.Normalize(v.Status, normalize.ShapeStatus), true
		}
		return "", false
	case tools.OwnersResult:
		if v.Workload != nil {
			return v.Workload.Name, true
		}
		if len(v.Owners) > 0 {
			return normalize.StripGeneratedSuffix(v.Owners[0].Name), true
		}
		return "", false
	default:
		return "", false
	}
}
