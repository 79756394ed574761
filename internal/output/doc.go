// Package output formats finished review results for display or machine
// consumption.
//
// Three formats are supported: text for human-readable terminal output
// (the default), json for the full structured result, and github for the
// exact body posted to the pull-request review API.
//
// All writers are pure, stateless projections of the final [review.Result].
// Use [GetWriter] to obtain a [Writer] for a format string, or
// [WriteResult] to handle destination selection between stdout and a file.
package output
