package review

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/convention"
	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/redact"
)

// ErrNoRepository is the pipeline's one fatal precondition: a review was
// requested without a configured repository, so conventions cannot load.
var ErrNoRepository = errors.New("no repository configured for convention lookup")

// RoutingPlan optionally restricts which categories apply to which files.
// A nil plan runs every analyzer on every file.
type RoutingPlan map[string][]convention.Category

// DefaultAnalyzers builds the four standard category analyzers.
func DefaultAnalyzers(gen Generator, log *zap.Logger) []*Analyzer {
	cats := convention.AnalyzerCategories()
	out := make([]*Analyzer, 0, len(cats))
	for _, c := range cats {
		out = append(out, NewAnalyzer(c, gen, log))
	}
	return out
}

// Orchestrator sequences load -> route -> analyze -> aggregate. It owns the
// concurrency shape: files strictly sequential in diff order, the assigned
// analyzers for each file concurrent with a wait-all join.
type Orchestrator struct {
	store         convention.Store
	analyzers     []*Analyzer
	redactSecrets bool
	log           *zap.Logger
}

// OrchestratorOptions configure an Orchestrator.
type OrchestratorOptions struct {
	// RedactSecrets scrubs secrets from diffs before they reach a prompt.
	RedactSecrets bool
	Logger        *zap.Logger
}

// NewOrchestrator creates an orchestrator over the given knowledge store
// and analyzers.
func NewOrchestrator(store convention.Store, analyzers []*Analyzer, opts OrchestratorOptions) *Orchestrator {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		store:         store,
		analyzers:     analyzers,
		redactSecrets: opts.RedactSecrets,
		log:           log,
	}
}

// Run executes the analysis stages against a PR diff and returns the run
// state holding the aggregated, ordered violations. Only the missing
// repository precondition aborts; individual analyzer faults degrade to
// zero findings for that file/category.
func (o *Orchestrator) Run(ctx context.Context, repositoryID string, pr PRDiffInput, plan RoutingPlan) (*RunState, error) {
	state := NewRunState()
	state.Apply(Delta{Status: StatusLoadingConventions})

	if repositoryID == "" {
		state.Apply(Delta{Status: StatusError})
		return state, ErrNoRepository
	}

	conventions, err := o.store.GetAllConventions(ctx, repositoryID)
	if err != nil {
		state.Apply(Delta{Status: StatusError})
		return state, fmt.Errorf("loading conventions for %s: %w", repositoryID, err)
	}
	o.log.Info("conventions loaded",
		zap.String("repository", repositoryID),
		zap.Int("count", len(conventions)))

	state.Apply(Delta{Conventions: &conventions, Status: StatusReviewing})

	for _, file := range pr.Files {
		delta := o.analyzeFile(ctx, file, conventions, plan)
		state.Apply(delta)
	}

	state.Apply(Delta{Status: StatusAggregating})

	sorted := make([]Violation, len(state.Violations))
	copy(sorted, state.Violations)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := SeverityRank(sorted[i].Severity), SeverityRank(sorted[j].Severity)
		if ri != rj {
			return ri < rj
		}
		return sorted[i].File < sorted[j].File
	})
	state.Apply(Delta{ResetViolations: true, Violations: sorted, Status: StatusComplete})
	return state, nil
}

// analyzeFile fans out the assigned analyzers for one file and joins them
// all before returning. A panicking analyzer task is absorbed so the other
// categories for this file, and every later file, proceed unaffected.
func (o *Orchestrator) analyzeFile(ctx context.Context, file PRFile, conventions []convention.Convention, plan RoutingPlan) Delta {
	assigned := o.assignedAnalyzers(file.Path, plan)

	diffText := file.Diff
	if o.redactSecrets {
		diffText = redact.Secrets(diffText)
	}

	results := make([][]Violation, len(assigned))
	taskErrs := make([]error, len(assigned))

	g, gctx := errgroup.WithContext(ctx)
	for i, a := range assigned {
		i, a := i, a
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					taskErrs[i] = fmt.Errorf("%s analyzer panic on %s: %v", a.Category(), file.Path, r)
				}
			}()
			results[i] = a.Analyze(gctx, diffText, file.Path, conventions)
			return nil
		})
	}
	// Tasks never return errors; the join is a pure wait-all.
	_ = g.Wait()

	delta := Delta{FilesReviewed: []string{file.Path}}
	for i := range assigned {
		if taskErrs[i] != nil {
			o.log.Error("analyzer task failed", zap.Error(taskErrs[i]))
			delta.Errors = append(delta.Errors, taskErrs[i].Error())
			continue
		}
		delta.Violations = append(delta.Violations, results[i]...)
	}
	return delta
}

func (o *Orchestrator) assignedAnalyzers(path string, plan RoutingPlan) []*Analyzer {
	if plan == nil {
		return o.analyzers
	}
	cats, ok := plan[path]
	if !ok {
		return o.analyzers
	}
	allowed := make(map[convention.Category]bool, len(cats))
	for _, c := range cats {
		allowed[c] = true
	}
	var out []*Analyzer
	for _, a := range o.analyzers {
		if allowed[a.Category()] {
			out = append(out, a)
		}
	}
	return out
}
