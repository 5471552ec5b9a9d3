// Package classify maps files to usage categories by their content type.
package classify

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/lumipallolabs/diskusage/internal/model"
)

// extensions resolves common types without opening the file
var extensions = map[string]model.Category{
	".jpg": model.Images, ".jpeg": model.Images, ".png": model.Images, ".gif": model.Images,
	".webp": model.Images, ".bmp": model.Images, ".tif": model.Images, ".tiff": model.Images,
	".heic": model.Images, ".heif": model.Images, ".svg": model.Images, ".ico": model.Images,
	".psd": model.Images, ".raw": model.Images, ".cr2": model.Images, ".nef": model.Images,

	".mp4": model.Videos, ".m4v": model.Videos, ".mov": model.Videos, ".mkv": model.Videos,
	".avi": model.Videos, ".webm": model.Videos, ".wmv": model.Videos, ".flv": model.Videos,
	".mpg": model.Videos, ".mpeg": model.Videos, ".3gp": model.Videos,

	".mp3": model.Music, ".flac": model.Music, ".wav": model.Music, ".aac": model.Music,
	".m4a": model.Music, ".ogg": model.Music, ".opus": model.Music, ".aiff": model.Music,
	".wma": model.Music, ".mid": model.Music, ".midi": model.Music,

	".doc": model.Documents, ".docx": model.Documents, ".xls": model.Documents, ".xlsx": model.Documents,

	".bz": model.Archives, ".bz2": model.Archives, ".zip": model.Archives, ".tar": model.Archives,
	".gz": model.Archives, ".tgz": model.Archives, ".7z": model.Archives,

	".exe": model.Binaries, ".dll": model.Binaries, ".so": model.Binaries, ".dylib": model.Binaries,
	".bin": model.Binaries, ".o": model.Binaries, ".a": model.Binaries,
}

var documentTypes = []string{
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"text/plain",
}

var archiveTypes = []string{
	"application/x-bzip",
	"application/x-bzip2",
	"application/zip",
	"application/x-tar",
	"application/gzip",
	"application/x-7z-compressed",
}

var binaryTypes = []string{
	"application/x-elf",
	"application/x-executable",
	"application/x-sharedlib",
	"application/x-object",
	"application/x-mach-binary",
	"application/vnd.microsoft.portable-executable",
	"application/x-msdownload",
	"application/wasm",
}

// Classify returns the category of the file at path. Known extensions are
// resolved directly; anything else is sniffed from its leading bytes. Files
// whose type cannot be inferred are Other.
func Classify(path string) model.Category {
	if c, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return c
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return model.Other
	}
	return FromMIME(mtype)
}

// FromMIME maps a detected content type to a category
func FromMIME(mtype *mimetype.MIME) model.Category {
	if mtype == nil {
		return model.Other
	}

	s := mtype.String()
	switch {
	case strings.HasPrefix(s, "image/"):
		return model.Images
	case strings.HasPrefix(s, "audio/"):
		return model.Music
	case strings.HasPrefix(s, "video/"):
		return model.Videos
	}

	// Office formats are zip containers, so match them before archives
	if isAny(mtype, documentTypes) {
		return model.Documents
	}
	for m := mtype; m != nil; m = m.Parent() {
		if isAny(m, archiveTypes) {
			return model.Archives
		}
		if isAny(m, binaryTypes) {
			return model.Binaries
		}
	}
	return model.Other
}

func isAny(mtype *mimetype.MIME, types []string) bool {
	for _, t := range types {
		if mtype.Is(t) {
			return true
		}
	}
	return false
}
