package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gabriel-vasile/mimetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumipallolabs/diskusage/internal/model"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestClassifyByExtension(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		want model.Category
	}{
		{"photo.JPG", model.Images},
		{"clip.mp4", model.Videos},
		{"song.flac", model.Music},
		{"report.docx", model.Documents},
		{"sheet.xls", model.Documents},
		{"backup.tar", model.Archives},
		{"backup.7z", model.Archives},
		{"lib.so", model.Binaries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Content is irrelevant when the extension is known
			path := writeFile(t, dir, tt.name, make([]byte, 64))
			assert.Equal(t, tt.want, Classify(path))
		})
	}
}

func TestClassifyBySignature(t *testing.T) {
	dir := t.TempDir()

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	elf := append([]byte("\x7fELF"), make([]byte, 60)...)
	zip := append([]byte("PK\x03\x04"), make([]byte, 60)...)

	tests := []struct {
		name    string
		content []byte
		want    model.Category
	}{
		{"picture", png, model.Images},
		{"program", elf, model.Binaries},
		{"bundle", zip, model.Archives},
		{"notes.txt", []byte("plain text notes\n"), model.Documents},
		{"blob.dat", make([]byte, 4096), model.Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name, tt.content)
			assert.Equal(t, tt.want, Classify(path))
		})
	}
}

func TestClassifyUnreadableIsOther(t *testing.T) {
	assert.Equal(t, model.Other, Classify(filepath.Join(t.TempDir(), "missing.unknown")))
}

func TestFromMIME(t *testing.T) {
	assert.Equal(t, model.Other, FromMIME(nil))
	assert.Equal(t, model.Music, FromMIME(mimetype.Detect([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"))))
	assert.Equal(t, model.Other, FromMIME(mimetype.Detect([]byte("<html><body></body></html>"))))
}
