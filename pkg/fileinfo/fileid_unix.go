//go:build !windows

package fileinfo

import (
	"syscall"

	"github.com/pkg/errors"
)

// GetFileID returns the unique file identifier (device + inode) and link
// count for a file. This uses direct syscall.Stat() instead of os.Stat() for
// better performance. Symlinks are followed, so the identity is that of the
// link target.
func GetFileID(path string) (FileID, uint64, error) {
	var stat syscall.Stat_t
	if err := syscall.Stat(path, &stat); err != nil {
		return FileID{}, 0, errors.Wrap(err, "stat file")
	}

	return FileID{
		Device: uint64(stat.Dev),
		Inode:  uint64(stat.Ino),
	}, uint64(stat.Nlink), nil
}
