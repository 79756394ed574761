// Sensei is a convention-aware CLI for reviewing pull requests with LLM providers.
//
// It learns a team's coding conventions, checks PR diffs against them across
// naming, structure, pattern, testing, error-handling, and security categories,
// and posts explained, constructive review comments with deterministic exit
// codes suitable for CI gating.
//
// Usage:
//
//	sensei review 42 --owner acme --repo widgets   # review a pull request
//	sensei ask "how do we name React hooks?"       # query the convention base
//	sensei conventions list                        # show stored conventions
//	sensei conventions add --id naming-001 ...     # record a convention
//	sensei config init                             # write a default config
//
// See https://github.com/shalwin04/code-reviewer-sensei-sub001 for full documentation.
package main
