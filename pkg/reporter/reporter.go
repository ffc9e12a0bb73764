package reporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/finddups/finddups/pkg/fileinfo"
	"github.com/finddups/finddups/pkg/groupby"
	"github.com/finddups/finddups/pkg/logger"
)

// Reporter prints duplicate sets for hashed size buckets. Sentinel digests
// group like any other digest, so two independent read failures in one bucket
// surface as a (spurious) pseudo-duplicate, matching the engine's tolerance.
type Reporter struct {
	w   io.Writer
	log *logrus.Entry
}

// New returns a Reporter writing duplicate sets to w.
func New(w io.Writer) *Reporter {
	return &Reporter{
		w:   w,
		log: logger.GetLogger("reporter"),
	}
}

// Report groups one size bucket's hash records by digest and prints every
// group with more than one member. It returns the number of duplicate sets
// and the number of paths within them.
func (r *Reporter) Report(size int64, hashes []fileinfo.HashRecord) (sets int, paths int) {
	for _, group := range groupby.ByKey(hashes, func(h fileinfo.HashRecord) string { return h.Digest }) {
		if len(group.Records) < 2 {
			continue
		}

		sets++
		fmt.Fprintf(r.w, "Size: %d | SHA1: %s\n", size, group.Key)

		for _, record := range group.Records {
			paths++
			fmt.Fprintf(r.w, "  %s%s\n", absPath(record.File.Path), r.linkSuffix(record.File.Path))
		}
	}

	return sets, paths
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// linkSuffix returns " -> target" when path is a symlink, using the link's
// immediate target rather than its fully resolved one.
func (r *Reporter) linkSuffix(path string) string {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return ""
	}

	target, err := os.Readlink(path)
	if err != nil {
		r.log.WithError(err).Debugf("Failed reading link target: %q", path)
		return ""
	}

	return " -> " + target
}
