package types

// StatusEntry is one line of working copy status output.
type StatusEntry struct {
	Code byte
	Path string
}

// Working copy status codes the reconciliation cares about.
const (
	StatusUntracked byte = '?'
	StatusModified  byte = 'M'
)

// FileSetDiff is the result of reconciling the staged tree with the mirror.
type FileSetDiff struct {
	ToAdd              []string
	ToDelete           []string
	ToCommitAsModified []string
}

// Empty reports whether there is nothing to add, delete or commit.
func (d FileSetDiff) Empty() bool {
	return len(d.ToAdd) == 0 && len(d.ToDelete) == 0 && len(d.ToCommitAsModified) == 0
}
