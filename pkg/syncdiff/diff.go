package syncdiff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/svnrelease/pkg/types"
)

// ReadmeFile is the generated readme. It is always regenerated, never diffed.
const ReadmeFile = "readme.txt"

// MetadataDir is the mirror's version control metadata directory.
const MetadataDir = ".svn"

// DefaultExclusions are never scheduled for deletion.
var DefaultExclusions = []string{MetadataDir, ReadmeFile}

// SummaryLimit is how many paths Summarize lists before truncating.
const SummaryLimit = 5

// ComputeAddSet returns the untracked paths reported by status.
func ComputeAddSet(status []types.StatusEntry) []string {
	return pathsWithCode(status, types.StatusUntracked)
}

// ModifiedFromStatus returns the modified paths reported by status, in
// status order.
func ModifiedFromStatus(status []types.StatusEntry) []string {
	return pathsWithCode(status, types.StatusModified)
}

func pathsWithCode(status []types.StatusEntry, code byte) []string {
	var out []string
	for _, entry := range status {
		if entry.Code == code && entry.Path != "" {
			out = append(out, entry.Path)
		}
	}
	return out
}

// ComputeDeleteSet returns the mirror paths that are absent from the source
// tree, skipping anything matched by exclusions. A directory that goes away
// is returned alone; its contents are not listed separately.
func ComputeDeleteSet(source, mirror, exclusions []string) []string {
	present := make(map[string]struct{}, len(source))
	for _, p := range source {
		present[p] = struct{}{}
	}

	var candidates []string
	for _, p := range mirror {
		if _, ok := present[p]; ok {
			continue
		}
		if excluded(p, exclusions) {
			continue
		}
		candidates = append(candidates, p)
	}
	return collapse(candidates)
}

func excluded(p string, exclusions []string) bool {
	for _, e := range exclusions {
		e = Normalize(e, false)
		if p == e || p == e+"/" || strings.HasPrefix(p, e+"/") {
			return true
		}
	}
	return false
}

// KindConflicts returns the mirror paths that the source tree holds with
// the other kind: a mirror file where the source has a directory, or the
// reverse. Paths are in mirror form, sorted, and a conflicting directory
// is returned without its contents.
func KindConflicts(source, mirror []string) []string {
	present := make(map[string]struct{}, len(source))
	for _, p := range source {
		present[p] = struct{}{}
	}

	var candidates []string
	for _, p := range mirror {
		if excluded(p, []string{MetadataDir}) {
			continue
		}
		other := p + "/"
		if strings.HasSuffix(p, "/") {
			other = strings.TrimSuffix(p, "/")
		}
		if _, ok := present[other]; ok {
			candidates = append(candidates, p)
		}
	}
	return collapse(candidates)
}

// collapse sorts paths and drops those inside a listed directory.
func collapse(paths []string) []string {
	sort.Strings(paths)

	var out []string
	var dirs []string
	for _, p := range paths {
		if hasAnyPrefix(p, dirs) {
			continue
		}
		out = append(out, p)
		if strings.HasSuffix(p, "/") {
			dirs = append(dirs, p)
		}
	}
	return out
}

// Diff combines the tree-derived delete set with the status-derived add and
// modified sets.
func Diff(source, mirror []string, status []types.StatusEntry) types.FileSetDiff {
	return types.FileSetDiff{
		ToAdd:              ComputeAddSet(status),
		ToDelete:           ComputeDeleteSet(source, mirror, DefaultExclusions),
		ToCommitAsModified: ModifiedFromStatus(status),
	}
}

// Summarize renders paths as a comma separated list of at most limit
// entries, followed by " and N more" when truncated. It returns "" for an
// empty list.
func Summarize(paths []string, limit int) string {
	if len(paths) == 0 {
		return ""
	}
	if limit <= 0 || len(paths) <= limit {
		return strings.Join(paths, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(paths[:limit], ", "), len(paths)-limit)
}
