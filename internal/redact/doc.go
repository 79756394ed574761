// Package redact removes secrets from diff content before it is embedded in
// any generation prompt.
//
// Detection uses regex heuristics covering common secret shapes: API keys,
// JWTs, private keys, AWS access key IDs and secret access keys, bearer
// tokens, database connection strings, and provider-specific tokens.
// Matched values are replaced with [REDACTED] while the surrounding text is
// left intact, so line numbers in the diff stay meaningful to analyzers.
package redact
