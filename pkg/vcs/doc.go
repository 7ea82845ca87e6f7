// Package vcs drives the git and svn command line clients.
//
// Git implements types.SourceRepo and Svn implements types.MirrorRepo. Both
// run their client through a Runner, which captures output, logs every
// invocation and turns a non-zero exit into a VCS error naming the command.
package vcs
