// Package runstore persists alignment runs in SQLite.
//
// Each Run records its inputs' hash, the weights used, and the resulting
// groups, so the CLI can list past runs and reuse a stored result when the
// same sequences are aligned again with the same weights. The pipeline is
// deterministic, which makes the input hash a sound cache key.
//
// Writes and pruning hold an exclusive file lock next to the database so
// concurrent CLI invocations never interleave them. Schema changes bump the
// version in schema.go; users delete runs.db to adopt the new schema.
package runstore
