// Package types defines the core types and interfaces shared by the release
// pipeline: the ReleaseContext threaded through every stage, the reconciliation
// results, and the ports (filesystem, version control, confirmation, version
// lookup) the pipeline depends on.
package types
