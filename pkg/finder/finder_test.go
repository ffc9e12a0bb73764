package finder

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finddups/finddups/pkg/config"
	"github.com/finddups/finddups/pkg/hasher"
	"github.com/finddups/finddups/pkg/reporter"
	"github.com/finddups/finddups/pkg/scanner"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newFinder(t *testing.T, cfg *config.Settings, out *bytes.Buffer) *Finder {
	t.Helper()

	s, err := scanner.New(cfg, nil)
	require.NoError(t, err)

	return New(s, hasher.New(2), reporter.New(out))
}

func defaultSettings() *config.Settings {
	return &config.Settings{MinSize: 1, Glob: "*"}
}

func TestFind_ReportsDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "hello")
	writeFile(t, filepath.Join(dir, "b.txt"), "hello")
	writeFile(t, filepath.Join(dir, "c.txt"), "world")

	var buf bytes.Buffer
	f := newFinder(t, defaultSettings(), &buf)

	summary, err := f.Find(context.Background(), []string{dir})
	require.NoError(t, err)

	assert.EqualValues(t, 3, summary.FilesExamined)
	assert.EqualValues(t, 1, summary.DuplicateSets)
	assert.EqualValues(t, 2, summary.PathsInSets)
	assert.EqualValues(t, 3, summary.Hashes.Calculated)
	assert.EqualValues(t, 0, summary.Hashes.Skipped)

	out := buf.String()
	assert.Contains(t, out, "Size: 5 | SHA1: ")
	assert.Contains(t, out, filepath.Join(dir, "a.txt"))
	assert.Contains(t, out, filepath.Join(dir, "b.txt"))
	assert.NotContains(t, out, filepath.Join(dir, "c.txt"))
}

func TestFind_DistinctContentIsSilent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "alpha")
	writeFile(t, filepath.Join(dir, "b.txt"), "bravo")

	var buf bytes.Buffer
	f := newFinder(t, defaultSettings(), &buf)

	summary, err := f.Find(context.Background(), []string{dir})
	require.NoError(t, err)

	assert.EqualValues(t, 0, summary.DuplicateSets)
	assert.Empty(t, buf.String())
}

func TestFind_HardlinksShortCircuit(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	writeFile(t, a, "hello")
	require.NoError(t, os.Link(a, filepath.Join(dir, "b.txt")))

	var buf bytes.Buffer
	f := newFinder(t, defaultSettings(), &buf)

	summary, err := f.Find(context.Background(), []string{dir})
	require.NoError(t, err)

	// both aliases of one inode: reported as a set without reading content
	assert.EqualValues(t, 1, summary.DuplicateSets)
	assert.EqualValues(t, 2, summary.PathsInSets)
	assert.EqualValues(t, 0, summary.Hashes.Calculated)
	assert.EqualValues(t, 2, summary.Hashes.Skipped)

	assert.Contains(t, buf.String(), "<INODE ")
}

func TestFind_HardlinksBesideDistinctInode(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	writeFile(t, a, "hello")
	require.NoError(t, os.Link(a, filepath.Join(dir, "b.txt")))
	writeFile(t, filepath.Join(dir, "c.txt"), "world")

	var buf bytes.Buffer
	f := newFinder(t, defaultSettings(), &buf)

	summary, err := f.Find(context.Background(), []string{dir})
	require.NoError(t, err)

	// the hardlink pair is read once, the alias digest is fanned out
	assert.EqualValues(t, 1, summary.DuplicateSets)
	assert.EqualValues(t, 2, summary.PathsInSets)
	assert.EqualValues(t, 2, summary.Hashes.Calculated)
	assert.EqualValues(t, 1, summary.Hashes.Skipped)
}

func TestFind_UniqueSizesAreNeverHashed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "ab")
	writeFile(t, filepath.Join(dir, "b.txt"), "abcd")
	writeFile(t, filepath.Join(dir, "c.txt"), "abcdef")

	var buf bytes.Buffer
	f := newFinder(t, defaultSettings(), &buf)

	summary, err := f.Find(context.Background(), []string{dir})
	require.NoError(t, err)

	assert.EqualValues(t, 3, summary.FilesExamined)
	assert.EqualValues(t, 0, summary.Hashes.Calculated)
	assert.EqualValues(t, 0, summary.Hashes.Skipped)
}

func TestFind_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "hello")
	writeFile(t, filepath.Join(dir, "b.txt"), "hello")
	writeFile(t, filepath.Join(dir, "c.txt"), "duplo")
	writeFile(t, filepath.Join(dir, "d.txt"), "duplo")

	run := func() []string {
		var buf bytes.Buffer
		f := newFinder(t, defaultSettings(), &buf)

		_, err := f.Find(context.Background(), []string{dir})
		require.NoError(t, err)

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		sort.Strings(lines)
		return lines
	}

	assert.Equal(t, run(), run())
}
