package filesystem

import (
	"io"
	"io/fs"
)

// File is an open file that can be forced to stable storage
type File interface {
	io.Reader
	io.Writer
	io.Closer
	Name() string
	Sync() error
}

// FS is the filesystem surface plugboot needs
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)
	Remove(name string) error
	RemoveAll(path string) error
	ReadDir(name string) ([]fs.DirEntry, error)
}

// Exists reports whether anything exists at path
func Exists(fsys FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// IsDir reports whether path is an existing directory
func IsDir(fsys FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path is an existing regular file
func IsFile(fsys FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsEmptyDir reports whether path is a directory without entries.
// A missing path is reported as empty.
func IsEmptyDir(fsys FS, path string) (bool, error) {
	entries, err := fsys.ReadDir(path)
	if err != nil {
		if !Exists(fsys, path) {
			return true, nil
		}
		return false, err
	}
	return len(entries) == 0, nil
}
