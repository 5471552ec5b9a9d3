package model

// LargeFile is an entry of the largest-files list
type LargeFile struct {
	Path string
	Size int64
}

// DirUsage is a reclaimable directory and the bytes beneath it
type DirUsage struct {
	Path string
	Size int64
}

// Paths returns the paths of both candidate lists, files first
func Paths(files []LargeFile, dirs []DirUsage) []string {
	paths := make([]string, 0, len(files)+len(dirs))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	for _, d := range dirs {
		paths = append(paths, d.Path)
	}
	return paths
}
