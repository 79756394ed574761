// Package github provides a minimal GitHub REST API client for the two
// ends of a review run: fetching pull-request files and diffs as pipeline
// input, and posting the finished comments back as a PR review.
//
// Authentication uses the GITHUB_TOKEN environment variable. [DetectRepo]
// resolves the owner and repository name from the local git remote, and
// [ParseRemoteURL] handles both HTTPS and SSH remote formats. Comments are
// posted in GitHub's standard PR review format with file path and line
// number annotations.
package github
