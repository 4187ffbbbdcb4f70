package chronoview

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// touch writes an empty file at dir/name with the given modification time.
func touch(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))
	require.NoError(t, os.Chtimes(p, mtime, mtime))
	return p
}

func names(is []*TimelineItem) []string {
	ns := []string{}
	for _, i := range is {
		ns = append(ns, i.DisplayName)
	}
	return ns
}

func TestLoadRequiresExtensions(t *testing.T) {
	_, err := Load(t.TempDir(), LoadOptions{})
	require.True(t, errors.Is(err, ErrNoExtensions))

	_, err = Load(t.TempDir(), LoadOptions{Extensions: []string{"", " "}})
	require.ErrorIs(t, err, ErrNoExtensions)
}

func TestLoadFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "c.jpg", testStart.Add(2*time.Hour))
	touch(t, dir, "a.JPG", testStart.Add(time.Hour))
	touch(t, dir, "b.jpeg", testStart)
	touch(t, dir, "notes.txt", testStart)
	touch(t, dir, ".hidden.jpg", testStart)
	touch(t, dir, "sub/d.jpg", testStart)

	is, err := Load(dir, LoadOptions{Extensions: []string{"jpg", ".jpeg"}})
	require.NoError(t, err)
	require.Equal(t, []string{"b.jpeg", "a.JPG", "c.jpg"}, names(is))
	require.Equal(t, filepath.Join(dir, "b.jpeg"), is[0].Path)
	require.True(t, is[0].Timestamp.Equal(testStart))
}

func TestLoadRecursive(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "top.jpg", testStart.Add(time.Minute))
	touch(t, dir, "2024/06/deep.jpg", testStart)
	touch(t, dir, ".cache/skip.jpg", testStart)

	is, err := Load(dir, LoadOptions{Recursive: true, Extensions: []string{".jpg"}})
	require.NoError(t, err)
	require.Equal(t, []string{"deep.jpg", "top.jpg"}, names(is))
}

func TestLoadEqualTimestampsOrderByPath(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.png", testStart)
	touch(t, dir, "a.png", testStart)

	is, err := Load(dir, LoadOptions{Extensions: []string{"png"}})
	require.NoError(t, err)
	require.Equal(t, []string{"a.png", "b.png"}, names(is))
}

func TestLoadMissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"), LoadOptions{Extensions: []string{"jpg"}})
	require.Error(t, err)
}

type fakeDater map[string]time.Time

func (f fakeDater) Taken(path string) (time.Time, error) {
	t, ok := f[filepath.Base(path)]
	if !ok {
		return time.Time{}, errors.New("no DateTimeOriginal")
	}
	return t, nil
}

func TestLoadUsesDater(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.jpg", testStart)
	touch(t, dir, "b.jpg", testStart.Add(time.Hour))

	d := fakeDater{"a.jpg": testStart.Add(24 * time.Hour)}
	is, err := Load(dir, LoadOptions{Extensions: []string{"jpg"}, Dater: d})
	require.NoError(t, err)
	require.Equal(t, []string{"b.jpg", "a.jpg"}, names(is))
	require.True(t, is[1].Timestamp.Equal(testStart.Add(24*time.Hour)))
}
