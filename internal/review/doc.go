// Package review contains the core types and engine for convention-aware
// code review of pull requests.
//
// It defines the Violation, ExplainedFeedback, and FormattedComment types
// and threads a [RunState] through the stages via [Delta] merges: pointer
// fields replace, slice fields append, and Reset fields clear a slice at a
// stage boundary before appending.
//
// The [Orchestrator] walks the PR files sequentially and fans each file out
// to category analyzers in parallel with bounded concurrency. A panicking
// or failing analyzer is recorded and skipped rather than aborting the run;
// only a missing repository identifier is fatal. Aggregated violations are
// deduplicated by file, line, and category, then ordered by severity with
// file path as the tie-break.
//
// The [Explainer] produces exactly one explanation per violation (falling
// back to the convention's own description when generation fails), and the
// [Controller] formats explanations into reviewer-voiced comments and a run
// summary. [Pipeline] wires the three stages together behind one entry
// point.
package review
