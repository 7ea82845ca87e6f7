// Package staging builds the release workspace.
//
// The workspace is the mirror checkout. Staging exports the tagged source
// snapshot as a zip archive into the scratch file, extracts it over the
// checkout, applies the configured file and directory removals and writes the
// generated readme.txt. It records the resulting source-derived tree on the
// ReleaseContext for reconciliation.
package staging
