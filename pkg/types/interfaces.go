package types

import (
	"context"
	"io/fs"
)

// FS provides the filesystem operations staging and reconciliation need.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
}

// SourceRepo is the part of the version control contract that drives the
// source repository (git).
type SourceRepo interface {
	Pull(ctx context.Context, repoPath string) error
	TagExists(ctx context.Context, repoPath, tag string) (bool, error)
	CreateTag(ctx context.Context, repoPath, tag, message string) error
	ArchiveTag(ctx context.Context, repoPath, tag, outFile string) error
}

// MirrorRepo is the part of the version control contract that drives the
// distribution repository (svn).
type MirrorRepo interface {
	// CheckTagAbsentRemotely returns true when it is safe to create tag.
	CheckTagAbsentRemotely(ctx context.Context, remoteURL, tag string) (bool, error)
	Checkout(ctx context.Context, remoteURL, targetDir string) error
	Status(ctx context.Context, workingDir string) ([]StatusEntry, error)
	Add(ctx context.Context, workingDir, path string) error
	Delete(ctx context.Context, workingDir, path string) error
	Commit(ctx context.Context, workingDir, message string) error
	CopyTrunkToTag(ctx context.Context, remoteURL, tag, message string) error
}

// VcsExecutor is the full version control contract. Process backed
// implementations cover one side each; test fakes usually cover both.
type VcsExecutor interface {
	SourceRepo
	MirrorRepo
}

// Confirmer asks the operator to approve an irreversible step. Confirm
// returns ctx.Err() when ctx is done before an answer arrives.
type Confirmer interface {
	Confirm(ctx context.Context, req ConfirmationRequest) (bool, error)
}

// VersionProvider looks up the latest known platform version. ok is false
// when the lookup could not produce an answer.
type VersionProvider interface {
	FetchLatestKnownVersion(ctx context.Context) (version string, ok bool)
}
