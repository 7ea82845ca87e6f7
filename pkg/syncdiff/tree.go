package syncdiff

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/svnrelease/pkg/types"
)

// ListTree walks root and returns every file and directory below it, relative
// to root. Directories carry a trailing "/". The result is sorted.
func ListTree(fsys types.FS, root string) ([]string, error) {
	var out []string
	stack := []string{""}

	for len(stack) > 0 {
		rel := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := fsys.ReadDir(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return nil, err
		}

		for _, entry := range entries {
			child := rel + entry.Name()
			if entry.IsDir() {
				child += "/"
				stack = append(stack, child)
			}
			out = append(out, child)
		}
	}

	sort.Strings(out)
	return out, nil
}

// Normalize converts p to the tree path convention: slash separated,
// relative, with a trailing "/" when dir is true.
func Normalize(p string, dir bool) string {
	p = strings.TrimPrefix(filepath.ToSlash(p), "./")
	p = strings.TrimSuffix(p, "/")
	if dir && p != "" {
		p += "/"
	}
	return p
}

// WithParents returns paths plus every ancestor directory they imply,
// sorted and de-duplicated.
func WithParents(paths []string) []string {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
		dir := path.Dir(strings.TrimSuffix(p, "/"))
		for dir != "." && dir != "/" && dir != "" {
			set[dir+"/"] = struct{}{}
			dir = path.Dir(dir)
		}
	}
	return sortedKeys(set)
}

// Prune removes files and whole directory subtrees from paths.
func Prune(paths, files, dirs []string) []string {
	drop := make(map[string]struct{}, len(files))
	for _, f := range files {
		drop[Normalize(f, false)] = struct{}{}
	}
	prefixes := make([]string, 0, len(dirs))
	for _, d := range dirs {
		prefixes = append(prefixes, Normalize(d, true))
	}

	var out []string
	for _, p := range paths {
		if _, ok := drop[p]; ok {
			continue
		}
		if hasAnyPrefix(p, prefixes) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func hasAnyPrefix(p string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
