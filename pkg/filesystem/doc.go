// Package filesystem provides filesystem implementations for svnrelease.
//
// This package contains the OS backed implementation of the types.FS
// interface used by staging and reconciliation.
package filesystem
