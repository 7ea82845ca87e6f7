// Package release runs the publish pipeline: it validates a source tag,
// stages the tagged snapshot into a checkout of the mirror trunk, reconciles
// additions and deletions, asks the operator to confirm, then commits and
// tags the mirror.
//
// Every stage reads and writes one types.ReleaseContext. Ephemeral
// resources created along the way (the workspace checkout and the archive
// scratch file) are removed exactly once when Run returns, whatever the
// outcome.
package release
