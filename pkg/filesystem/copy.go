package filesystem

import (
	"io"
	"os"
	"path/filepath"
)

// CopyTree copies the directory tree at src into dst. Existing files in dst
// are overwritten, files only present in dst are kept. It returns the number
// of regular files copied.
func CopyTree(fsys FS, src, dst string) (int, error) {
	if err := fsys.MkdirAll(dst, 0755); err != nil {
		return 0, err
	}

	entries, err := fsys.ReadDir(src)
	if err != nil {
		return 0, err
	}

	copied := 0
	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			n, err := CopyTree(fsys, from, to)
			copied += n
			if err != nil {
				return copied, err
			}
			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}
		if err := CopyFile(fsys, from, to); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}

// CopyFile copies one regular file, preserving its permission bits
func CopyFile(fsys FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}

	in, err := fsys.OpenFile(src, os.O_RDONLY, 0)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fsys.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
