package agent

import (
	"context"
	"log/slog"

	"github.com/NVIDIA/cluster-query-agent/pkg/defaults"
	apperrors "github.com/NVIDIA/cluster-query-agent/pkg/errors"
	"github.com/NVIDIA/cluster-query-agent/pkg/normalize"
	"github.com/NVIDIA/cluster-query-agent/pkg/oracle"
	"github.com/NVIDIA/cluster-query-agent/pkg/tools"
)

// run is the state of a single question.
type run struct {
	agent    *Agent
	log      *slog.Logger
	question string
	catalog  []tools.Spec

	state      State
	iterations int
	transcript []oracle.Step
	lastKey    string
}

func (r *run) transition(to State) {
	r.log.Debug("state transition", "from", r.state, "to", to, "iteration", r.iterations)
	r.state = to
}

// loop drives Planning, Acting and Observing until a terminal state.
func (r *run) loop(ctx context.Context) *Result {
	maxIter := r.agent.cfg.MaxIterations

	for {
		if r.iterations >= maxIter {
			r.log.Warn("iteration ceiling reached", "maxIterations", maxIter)
			return r.fail(ReasonIterationCeiling)
		}
		if ctx.Err() != nil {
			return r.fail(ReasonTimeout)
		}

		r.iterations++
		r.transition(StatePlanning)
		decision, err := r.agent.decide(ctx, oracle.Request{
			Question:      r.question,
			Tools:         r.catalog,
			Transcript:    r.transcript,
			Iteration:     r.iterations,
			MaxIterations: maxIter,
		}, r.log)
		if err != nil {
			if ctx.Err() != nil {
				return r.fail(ReasonTimeout)
			}
			r.log.Error("oracle unavailable", "error", err)
			return r.fail(ReasonOracleUnavailable)
		}
		r.log.Debug("oracle decided", "iteration", r.iterations, "decision", decision.String())

		switch decision.Kind {
		case oracle.DecisionFinalAnswer:
			if inv := decision.Call; inv.Tool != "" {
				if err := r.agent.registry.Validate(&inv); err != nil {
					r.log.Warn("malformed final answer", "error", err)
					key := inv.Key()
					if key == r.lastKey {
						return r.fail(ReasonCycle)
					}
					r.lastKey = key
					r.transition(StateObserving)
					r.transcript = append(r.transcript, oracle.Step{Invocation: inv, Observation: tools.ErrorObservation(inv, err)})
					continue
				}
			}
			return r.finish(ctx, decision)

		case oracle.DecisionToolCall:
			inv := decision.Call
			key := inv.Key()
			if key == r.lastKey {
				r.log.Warn("repeated tool call", "tool", inv.Tool)
				return r.fail(ReasonCycle)
			}
			r.lastKey = key

			r.transition(StateActing)
			obs := r.agent.registry.Dispatch(ctx, inv)
			if ctx.Err() != nil {
				// Observations that arrive after the deadline are discarded.
				return r.fail(ReasonTimeout)
			}

			r.transition(StateObserving)
			r.transcript = append(r.transcript, oracle.Step{Invocation: inv, Observation: obs})
			if obs.Terminal() {
				r.log.Error("cluster unavailable", "tool", inv.Tool, "code", obs.Err.Code)
				return r.fail(ReasonClusterUnavailable)
			}

		default:
			// Neither a call nor an answer: tell the oracle and plan again.
			inv := tools.Invocation{Tool: tools.FinalAnswer, Args: map[string]any{}}
			obs := tools.ErrorObservation(inv, apperrors.New(apperrors.ErrCodeMalformedInvocation,
				"respond with exactly one tool call or a final_answer"))
			r.transcript = append(r.transcript, oracle.Step{Invocation: inv, Observation: obs})
			r.lastKey = ""
		}
	}
}

func (r *run) result(state State, reason Reason, answer string) *Result {
	r.transition(state)
	return &Result{
		Answer:     answer,
		State:      state,
		Reason:     reason,
		Iterations: r.iterations,
		Transcript: r.transcript,
	}
}

// fail ends the loop with the best answer the transcript supports.
func (r *run) fail(reason Reason) *Result {
	return r.result(StateFailed, reason, bestEffort(r.transcript))
}

func (r *run) finish(ctx context.Context, d oracle.Decision) *Result {
	// "Unknown" is a legitimate status, not a refusal.
	if (d.Shape != normalize.ShapeStatus && isUnanswerable(d.Answer)) || normalize.Clean(d.Answer) == "" {
		return r.result(StateFailed, ReasonUnanswerable, defaults.UnknownAnswer)
	}
	return r.result(StateDone, ReasonAnswered, r.finalAnswer(ctx, d))
}
