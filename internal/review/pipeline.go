package review

import (
	"context"

	"go.uber.org/zap"

	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/convention"
)

// Pipeline cascades the full review: orchestrated analysis, explanation,
// and feedback formatting. Data flows strictly left to right; each stage
// owns the run state while it executes.
type Pipeline struct {
	store convention.Store
	gen   Generator
	opts  OrchestratorOptions
	log   *zap.Logger
}

// NewPipeline assembles a pipeline over a knowledge store and a generator.
func NewPipeline(store convention.Store, gen Generator, opts OrchestratorOptions) *Pipeline {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	opts.Logger = log
	return &Pipeline{store: store, gen: gen, opts: opts, log: log}
}

// Review runs the pipeline end to end for one PR. Recoverable per-item
// failures degrade inside their stages; only the missing-repository
// precondition (or a failing store) returns an error.
func (p *Pipeline) Review(ctx context.Context, repositoryID string, pr PRDiffInput, plan RoutingPlan) (Result, error) {
	orch := NewOrchestrator(p.store, DefaultAnalyzers(p.gen, p.log), p.opts)
	state, err := orch.Run(ctx, repositoryID, pr, plan)
	if err != nil {
		return Result{}, err
	}

	explainer := NewExplainer(p.gen, state.Conventions, p.log)
	explained := explainer.Explain(ctx, state.Violations)
	state.Apply(Delta{Explained: &explained})

	controller := NewController(p.gen, p.log)
	controller.Process(ctx, state)

	p.log.Info("review pipeline complete",
		zap.Int("pr", pr.PRNumber),
		zap.Int("violations", len(state.Violations)),
		zap.Int("comments", len(state.Comments)))

	return state.Result(pr), nil
}
