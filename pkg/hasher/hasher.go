package hasher

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"github.com/scylladb/go-set/strset"
	"github.com/sirupsen/logrus"

	"github.com/finddups/finddups/pkg/fileinfo"
	"github.com/finddups/finddups/pkg/groupby"
	"github.com/finddups/finddups/pkg/logger"
)

// ErrorDigest is the sentinel digest assigned to files that could not be
// read. It can never collide with a hex content digest or an inode sentinel.
const ErrorDigest = "_ERROR"

// Stats counts the hashing work done for one or more buckets.
type Stats struct {
	Calculated uint64
	Skipped    uint64
}

// Add merges other into s.
func (s *Stats) Add(other Stats) {
	s.Calculated += other.Calculated
	s.Skipped += other.Skipped
}

// Hasher converts buckets of same-size files into hash records, reading each
// distinct inode at most once. One Hasher is shared for the lifetime of a
// run; its worker pool bounds concurrent file reads across all buckets.
type Hasher struct {
	workerSem chan struct{}
	log       *logrus.Entry
}

// DefaultWorkers returns the default pool size of
// max(1, floor(0.75 x cores)).
func DefaultWorkers() int {
	workers := runtime.NumCPU() * 3 / 4
	if workers < 1 {
		workers = 1
	}
	return workers
}

// New creates a Hasher with the given pool size. A size of zero or less
// selects DefaultWorkers.
func New(workers int) *Hasher {
	if workers <= 0 {
		workers = DefaultWorkers()
	}

	return &Hasher{
		workerSem: make(chan struct{}, workers),
		log:       logger.GetLogger("hasher"),
	}
}

// InodeDigest returns the short-circuit sentinel digest for a bucket whose
// paths all alias one inode.
func InodeDigest(id fileinfo.FileID) string {
	return fmt.Sprintf("<INODE %d>", id.Inode)
}

// HashBucket converts a bucket of records known to share one size into hash
// records. Singleton inodes are hashed in parallel on the pool; hardlink
// groups are hashed once serially and the digest fanned out to every alias.
// Stats are mutated only here, never by the workers.
func (h *Hasher) HashBucket(bucket []fileinfo.FileRecord) ([]fileinfo.HashRecord, Stats) {
	var stats Stats
	if len(bucket) == 0 {
		return nil, stats
	}

	ids := strset.New()
	for _, record := range bucket {
		ids.Add(record.ID.String())
	}

	// every path in the bucket aliases a single inode, no reads needed
	if ids.Size() == 1 {
		digest := InodeDigest(bucket[0].ID)
		hashes := make([]fileinfo.HashRecord, 0, len(bucket))
		for _, record := range bucket {
			hashes = append(hashes, fileinfo.HashRecord{Digest: digest, File: record})
		}
		stats.Skipped += uint64(len(bucket))
		return hashes, stats
	}

	var singles []fileinfo.FileRecord
	var hardlinkGroups [][]fileinfo.FileRecord

	for _, group := range groupby.ByKey(bucket, func(r fileinfo.FileRecord) string { return r.ID.String() }) {
		if len(group.Records) == 1 {
			singles = append(singles, group.Records[0])
		} else {
			hardlinkGroups = append(hardlinkGroups, group.Records)
		}
	}

	// distinct inodes hash concurrently; results land in per-task slots so
	// collection needs no locking
	results := make([]fileinfo.HashRecord, len(singles))
	var wg sync.WaitGroup

	for i, record := range singles {
		wg.Add(1)

		h.workerSem <- struct{}{}

		go func(i int, record fileinfo.FileRecord) {
			defer wg.Done()
			defer func() {
				<-h.workerSem
			}()

			results[i] = h.hashContent(record)
		}(i, record)
	}

	wg.Wait()
	stats.Calculated += uint64(len(singles))

	hashes := results

	// hardlink sets are rare and small, so hashing them serially is fine:
	// read the first alias once and fan the digest out
	for _, group := range hardlinkGroups {
		first := h.hashContent(group[0])
		stats.Calculated++

		for _, record := range group {
			hashes = append(hashes, fileinfo.HashRecord{Digest: first.Digest, File: record})
		}
		stats.Skipped += uint64(len(group) - 1)
	}

	return hashes, stats
}

func (h *Hasher) hashContent(record fileinfo.FileRecord) fileinfo.HashRecord {
	digest, err := hashFile(record.Path)
	if err != nil {
		h.log.WithError(err).Warnf("Failed hashing file: %q", record.Path)
		return fileinfo.HashRecord{Digest: ErrorDigest, File: record}
	}

	return fileinfo.HashRecord{Digest: digest, File: record}
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "open file")
	}
	defer f.Close()

	hash := sha1.New()
	if _, err := io.Copy(hash, f); err != nil {
		return "", errors.Wrap(err, "read file")
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
