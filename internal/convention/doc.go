// Package convention defines team coding conventions and the knowledge
// store that serves them to the review pipeline.
//
// A [Convention] carries an identifier, a category, a human description,
// tags, and optional good/bad code examples. [FilterByCategory] selects the
// conventions relevant to a single analyzer, and [PromptSection] renders a
// slice of conventions into the prompt fragment analyzers embed in their
// generation requests.
//
// Two store implementations are provided: [SQLiteStore] persists
// conventions per repository in a local SQLite database (see [OpenSQLite]),
// and [MemoryStore] backs tests and seeding. An unseeded repository yields
// an empty, non-nil slice rather than an error.
package convention
