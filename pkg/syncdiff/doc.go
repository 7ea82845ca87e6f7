// Package syncdiff reconciles the staged release tree with the mirror tree.
//
// Trees are flattened into sets of slash separated paths relative to their
// root. Directories are listed with a trailing "/" so that comparison is an
// exact string match. The delete set comes from tree membership; the add and
// modified sets come from working copy status, which knows what is under
// version control.
package syncdiff
