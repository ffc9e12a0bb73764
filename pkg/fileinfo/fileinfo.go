package fileinfo

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidRecord indicates a record that violates its structural
// invariants. It signals a logic bug, not an environmental condition, and
// callers should treat it as fatal for the invocation.
var ErrInvalidRecord = errors.New("invalid record")

// FileID represents a unique file identifier (device ID + inode number).
type FileID struct {
	Device uint64 // Device ID
	Inode  uint64 // Inode number
}

// String returns a string representation of the FileID.
func (f FileID) String() string {
	return fmt.Sprintf("%d:%d", f.Device, f.Inode)
}

// Equal checks if two FileIDs are equal.
func (f FileID) Equal(other FileID) bool {
	return f.Device == other.Device && f.Inode == other.Inode
}

// FileRecord describes one filesystem entry discovered during a walk.
// Immutable once constructed.
type FileRecord struct {
	Path string
	Size int64
	ID   FileID
}

// NewFileRecord builds a FileRecord, enforcing its invariants at
// construction time.
func NewFileRecord(path string, size int64, id FileID) (FileRecord, error) {
	if path == "" {
		return FileRecord{}, errors.Wrap(ErrInvalidRecord, "empty path")
	}
	if size < 0 {
		return FileRecord{}, errors.Wrapf(ErrInvalidRecord, "negative size %d for %q", size, path)
	}
	return FileRecord{Path: path, Size: size, ID: id}, nil
}

// HashRecord carries the content fingerprint of one file. Digest is either a
// hex SHA-1, the inode short-circuit sentinel or the read-error sentinel.
type HashRecord struct {
	Digest string
	File   FileRecord
}
