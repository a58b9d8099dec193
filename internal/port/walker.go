package port

// Walker lists files under a root directory.
type Walker interface {
	Walk(root string) ([]FileInfo, error)
}

// FileInfo describes a file found by a Walker.
type FileInfo struct {
	Path    string
	ModTime int64
	Size    int64
}
