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

package cluster

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/util/retry"

	"github.com/NVIDIA/cluster-query-agent/pkg/defaults"
	apperrors "github.com/NVIDIA/cluster-query-agent/pkg/errors"
)

// DefaultBackoff is the bounded exponential backoff applied to cluster reads.
func DefaultBackoff() wait.Backoff {
	return wait.Backoff{
		Steps:    defaults.K8sRetryAttempts,
		Duration: defaults.K8sRetryBaseDelay,
		Factor:   defaults.K8sRetryFactor,
		Jitter:   0.1,
	}
}

// isTransient reports whether a failed read is worth repeating. Auth failures
// count as transient: expiring exec credentials and token refreshes recover
// on a later attempt.
func isTransient(err error) bool {
	switch {
	case err == nil:
		return false
	case apierrors.IsNotFound(err),
		apierrors.IsBadRequest(err),
		apierrors.IsInvalid(err),
		apierrors.IsMethodNotSupported(err),
		stderrors.Is(err, context.Canceled):
		return false
	}
	return true
}

// call runs fn with a per-call timeout, retrying transient failures, and
// classifies the final error into the agent's error taxonomy.
func (a *Adapter) call(ctx context.Context, op string, attrs map[string]any, fn func(context.Context) error) error {
	attempts := 0
	err := retry.OnError(a.backoff, func(err error) bool {
		return ctx.Err() == nil && isTransient(err)
	}, func() error {
		attempts++
		callCtx, cancel := context.WithTimeout(ctx, a.callTimeout)
		defer cancel()
		err := fn(callCtx)
		if err != nil && isTransient(err) {
			slog.Debug("cluster read failed",
				"op", op,
				"attempt", attempts,
				"error", err)
		}
		return err
	})
	if err == nil {
		return nil
	}

	ctxAttrs := map[string]any{"op": op, "attempts": attempts}
	for k, v := range attrs {
		ctxAttrs[k] = v
	}

	switch {
	case apierrors.IsNotFound(err):
		return apperrors.WrapWithContext(apperrors.ErrCodeNotFound, notFoundMessage(attrs), err, ctxAttrs)
	case apierrors.IsBadRequest(err), apierrors.IsInvalid(err):
		return apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest, fmt.Sprintf("%s rejected by the API server", op), err, ctxAttrs)
	case ctx.Err() != nil:
		return apperrors.WrapWithContext(apperrors.ErrCodeTimeout, fmt.Sprintf("%s interrupted", op), ctx.Err(), ctxAttrs)
	default:
		slog.Warn("cluster read unavailable",
			"op", op,
			"attempts", attempts,
			"error", err)
		return apperrors.WrapWithContext(apperrors.ErrCodeUnavailable, fmt.Sprintf("%s failed", op), err, ctxAttrs)
	}
}

func notFoundMessage(attrs map[string]any) string {
	kind, _ := attrs["kind"].(Kind)
	name, _ := attrs["name"].(string)
	ns, _ := attrs["namespace"].(string)
	switch {
	case ns != "":
		return fmt.Sprintf("%s %q not found in namespace %q", kind, name, ns)
	default:
		return fmt.Sprintf("%s %q not found", kind, name)
	}
}
