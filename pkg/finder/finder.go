package finder

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/finddups/finddups/pkg/fileinfo"
	"github.com/finddups/finddups/pkg/groupby"
	"github.com/finddups/finddups/pkg/hasher"
	"github.com/finddups/finddups/pkg/logger"
	"github.com/finddups/finddups/pkg/reporter"
	"github.com/finddups/finddups/pkg/scanner"
)

// Summary describes one completed run. The counters are observational only.
type Summary struct {
	FilesExamined uint64
	DuplicateSets uint64
	PathsInSets   uint64
	Hashes        hasher.Stats
}

// Finder coordinates the scan -> size grouping -> hashing -> report
// pipeline. Buckets are hashed one at a time; within a bucket distinct
// inodes hash concurrently on the shared pool.
type Finder struct {
	scanner  *scanner.Scanner
	hasher   *hasher.Hasher
	reporter *reporter.Reporter
	log      *logrus.Entry
}

// New wires a Finder from its stages.
func New(s *scanner.Scanner, h *hasher.Hasher, r *reporter.Reporter) *Finder {
	return &Finder{
		scanner:  s,
		hasher:   h,
		reporter: r,
		log:      logger.GetLogger("finder"),
	}
}

// Find scans the roots and reports every confirmed duplicate set. Vanished
// or unreadable files never fail a run; a record that violates its
// structural invariants does, since that indicates a logic bug.
func (f *Finder) Find(ctx context.Context, roots []string) (Summary, error) {
	var summary Summary

	var records []fileinfo.FileRecord
	for record := range f.scanner.Scan(ctx, roots) {
		records = append(records, record)
	}

	if err := f.scanner.Err(); err != nil {
		return summary, err
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	summary.FilesExamined = uint64(len(records))

	for _, bucket := range groupby.ByKey(records, func(r fileinfo.FileRecord) int64 { return r.Size }) {
		// a size seen once cannot hold duplicates
		if len(bucket.Records) < 2 {
			continue
		}

		hashes, stats := f.hasher.HashBucket(bucket.Records)
		summary.Hashes.Add(stats)

		sets, paths := f.reporter.Report(bucket.Key, hashes)
		summary.DuplicateSets += uint64(sets)
		summary.PathsInSets += uint64(paths)
	}

	f.logSummary(summary)

	return summary, nil
}

func (f *Finder) logSummary(summary Summary) {
	f.log.Debugf("Looked up  %s file sizes", humanize.Comma(int64(summary.FilesExamined)))
	f.log.Debugf("Found      %s duplication sets", humanize.Comma(int64(summary.DuplicateSets)))
	f.log.Debugf("Found      %s paths within sets", humanize.Comma(int64(summary.PathsInSets)))
	f.log.Debugf("Calculated %s SHA1 hashes", humanize.Comma(int64(summary.Hashes.Calculated)))
	f.log.Debugf("Short-cut  %s hard links", humanize.Comma(int64(summary.Hashes.Skipped)))
}
