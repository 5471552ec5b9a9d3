package deletion

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
}

func TestMeasure(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "a"), 10)
	write(t, filepath.Join(dir, "sub", "b"), 20)
	write(t, filepath.Join(dir, "sub", "deeper", "c"), 30)
	require.NoError(t, os.Symlink(filepath.Join(dir, "a"), filepath.Join(dir, "link")))

	size, err := Measure(dir)
	require.NoError(t, err)
	assert.Equal(t, int64(60), size)

	size, err = Measure(filepath.Join(dir, "a"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), size)

	_, err = Measure(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestForceDelete(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "node_modules")
	write(t, filepath.Join(target, "pkg", "index.js"), 100)

	d := New([]string{target})
	freed, err := d.ForceDelete(target)
	require.NoError(t, err)

	assert.Equal(t, int64(100), freed)
	assert.NoDirExists(t, target)

	_, err = d.ForceDelete(target)
	assert.ErrorIs(t, err, ErrNotCandidate, "a deleted path is no longer a candidate")
}

func TestRejectsNonCandidates(t *testing.T) {
	dir := t.TempDir()
	keep := filepath.Join(dir, "keep.bin")
	write(t, keep, 5)

	d := New([]string{filepath.Join(dir, "other.bin")})
	_, err := d.ForceDelete(keep)
	require.ErrorIs(t, err, ErrNotCandidate)
	assert.FileExists(t, keep)
}

func TestNilCandidatesAllowAnything(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "x.bin")
	write(t, file, 7)

	freed, err := New(nil).ForceDelete(file)
	require.NoError(t, err)
	assert.Equal(t, int64(7), freed)
}

func TestTrash(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("freedesktop trash layout")
	}

	dir := t.TempDir()
	trash := filepath.Join(dir, "Trash")
	first := filepath.Join(dir, "a", "movie.mkv")
	second := filepath.Join(dir, "b", "movie.mkv")
	write(t, first, 42)
	write(t, second, 8)

	d := New([]string{first, second}, WithTrashDir(trash))

	freed, err := d.Trash(first)
	require.NoError(t, err)
	assert.Equal(t, int64(42), freed)
	assert.NoFileExists(t, first)
	assert.FileExists(t, filepath.Join(trash, "files", "movie.mkv"))

	info, err := os.ReadFile(filepath.Join(trash, "info", "movie.mkv.trashinfo"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(info), "[Trash Info]\nPath="+first+"\n"))
	assert.Contains(t, string(info), "DeletionDate=")

	freed, err = d.Trash(second)
	require.NoError(t, err)
	assert.Equal(t, int64(8), freed)
	assert.FileExists(t, filepath.Join(trash, "files", "movie.mkv.2"))
	assert.FileExists(t, filepath.Join(trash, "info", "movie.mkv.2.trashinfo"))
}

func TestTrashKeepsStaleInfo(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("freedesktop trash layout")
	}

	dir := t.TempDir()
	trash := filepath.Join(dir, "Trash")
	target := filepath.Join(dir, "disk.img")
	write(t, target, 16)

	stale := filepath.Join(trash, "info", "disk.img.trashinfo")
	write(t, stale, 0)
	require.NoError(t, os.WriteFile(stale, []byte("[Trash Info]\nPath=/old/disk.img\n"), 0600))

	_, err := New([]string{target}, WithTrashDir(trash)).Trash(target)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(trash, "files", "disk.img.2"))
	assert.NoFileExists(t, filepath.Join(trash, "files", "disk.img"))
	old, err := os.ReadFile(stale)
	require.NoError(t, err)
	assert.Contains(t, string(old), "Path=/old/disk.img")

	info, err := os.ReadFile(filepath.Join(trash, "info", "disk.img.2.trashinfo"))
	require.NoError(t, err)
	assert.Contains(t, string(info), "Path="+target)
}

func TestTrashAcrossFilesystems(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("freedesktop trash layout")
	}

	dir := t.TempDir()
	trash := filepath.Join(dir, "Trash")
	target := filepath.Join(dir, "mnt", "video.mkv")
	write(t, target, 9)

	d := New([]string{target}, WithTrashDir(trash))
	d.rename = func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EXDEV}
	}

	_, err := d.Trash(target)
	require.ErrorIs(t, err, ErrCrossDevice)
	assert.Contains(t, err.Error(), ".Trash-$uid")
	assert.FileExists(t, target)
	assert.NoFileExists(t, filepath.Join(trash, "info", "video.mkv.trashinfo"))

	// Still a candidate, so it can be removed permanently instead
	freed, err := d.ForceDelete(target)
	require.NoError(t, err)
	assert.Equal(t, int64(9), freed)
}

func TestTrashUnsupported(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "x")
	write(t, file, 1)

	_, err := New(nil, WithTrashDir("")).Trash(file)
	require.ErrorIs(t, err, ErrTrashUnsupported)
	assert.FileExists(t, file)
}
