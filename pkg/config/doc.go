// Package config resolves the effective release settings.
//
// Settings come from ordered layers: the built-in defaults, a default file
// adjacent to the invocation directory, a local file one directory above it,
// a source-specific file inside the repository, environment variables and
// command line overrides. Later layers override earlier ones only with
// non-blank values. Placeholders of the form {{name}} are then substituted
// into every value.
package config
