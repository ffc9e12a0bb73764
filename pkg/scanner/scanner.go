package scanner

import (
	"context"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/finddups/finddups/pkg/config"
	"github.com/finddups/finddups/pkg/expression"
	"github.com/finddups/finddups/pkg/fileinfo"
	"github.com/finddups/finddups/pkg/logger"
)

// Scanner walks root directories and emits a FileRecord for every regular
// file that passes the name, size and filter checks. Entries that vanish or
// become unreadable mid-walk are skipped, not fatal.
type Scanner struct {
	cfg     *config.Settings
	filters []expression.CompiledExpression
	log     *logrus.Entry

	mu  sync.Mutex
	err error
}

// New validates the configured glob pattern and returns a Scanner.
func New(cfg *config.Settings, filters []expression.CompiledExpression) (*Scanner, error) {
	if _, err := filepath.Match(cfg.Glob, "probe"); err != nil {
		return nil, errors.Wrapf(err, "invalid glob pattern %q", cfg.Glob)
	}

	return &Scanner{
		cfg:     cfg,
		filters: filters,
		log:     logger.GetLogger("scanner"),
	}, nil
}

// Scan walks the given roots and streams records on the returned channel.
// The walk is lazy and restartable per call; the channel is closed once every
// root has been visited. Err reports any structural failure after the channel
// closes.
func (s *Scanner) Scan(ctx context.Context, roots []string) <-chan fileinfo.FileRecord {
	records := make(chan fileinfo.FileRecord, 128)

	go func() {
		defer close(records)

		conf := fastwalk.Config{
			Follow: s.cfg.Symlinks,
		}

		for _, root := range roots {
			if err := fastwalk.Walk(&conf, root, s.walkFunc(ctx, records)); err != nil {
				if ctx.Err() != nil {
					return
				}
				// environmental walk failures are absorbed
				s.log.WithError(err).Warnf("Failed walking root %q", root)
			}
		}
	}()

	return records
}

// Err returns the first structural error seen during the most recent walk.
// Only valid once the record channel has been closed.
func (s *Scanner) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Scanner) walkFunc(ctx context.Context, records chan<- fileinfo.FileRecord) fs.WalkDirFunc {
	maxSize := s.cfg.MaxSize
	if maxSize <= 0 {
		maxSize = math.MaxInt64
	}

	return func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// entry vanished or became unreadable between listing and stat
			s.log.WithError(err).Debugf("Skipping unreadable entry: %q", path)
			return nil
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			return nil
		}

		isLink := d.Type()&fs.ModeSymlink != 0
		if isLink && !s.cfg.Symlinks {
			s.log.Tracef("Skipping symlink: %q", path)
			return nil
		}

		if matched, _ := filepath.Match(s.cfg.Glob, d.Name()); !matched {
			return nil
		}

		var info fs.FileInfo
		if isLink {
			// resolve the link so size and identity describe the target
			info, err = os.Stat(path)
		} else {
			info, err = d.Info()
		}
		if err != nil {
			s.log.WithError(err).Debugf("Skipping vanished entry: %q", path)
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		if info.Size() < s.cfg.MinSize || info.Size() > maxSize {
			return nil
		}

		id, _, err := fileinfo.GetFileID(path)
		if err != nil {
			s.log.WithError(err).Debugf("Skipping unstatable entry: %q", path)
			return nil
		}

		record, err := fileinfo.NewFileRecord(path, info.Size(), id)
		if err != nil {
			s.setErr(err)
			return err
		}

		if len(s.filters) > 0 {
			match, failed, err := expression.CheckFileAllMatchWithReason(record, s.filters)
			if err != nil {
				s.log.WithError(err).Warnf("Skipping file, filter evaluation failed: %q", path)
				return nil
			}
			if !match {
				s.log.Tracef("Skipping file %q, failed filters: %v", path, failed)
				return nil
			}
		}

		select {
		case records <- record:
		case <-ctx.Done():
			return ctx.Err()
		}

		return nil
	}
}

func (s *Scanner) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}
