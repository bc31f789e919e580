package paths

import (
	"os"

	"github.com/arthur-debert/plugboot/pkg/errors"
	"github.com/arthur-debert/plugboot/pkg/filesystem"
	"github.com/arthur-debert/plugboot/pkg/logging"
	"github.com/rs/zerolog"
)

// Registry materializes layout directories on a filesystem
type Registry struct {
	fs     filesystem.FS
	logger zerolog.Logger
}

// NewRegistry creates a registry; a nil fs means the OS filesystem
func NewRegistry(fs filesystem.FS) *Registry {
	if fs == nil {
		fs = filesystem.NewOS()
	}
	return &Registry{
		fs:     fs,
		logger: logging.GetLogger("paths"),
	}
}

// EnsureDirectory creates path when it does not exist. An existing directory
// is left untouched; an existing non-directory is an error.
func (r *Registry) EnsureDirectory(path string) (bool, error) {
	if path == "" {
		return false, errors.New(errors.ErrInvalidInput, "directory path must not be empty")
	}

	info, err := r.fs.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return false, errors.Newf(errors.ErrDirCreate, "%s exists and is not a directory", path).
				WithDetail("path", path)
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, errors.Wrapf(err, errors.ErrDirCreate, "failed to stat %s", path)
	}

	r.logger.Debug().Str("path", path).Msg("Directory not found. Creating...")
	if err := r.fs.MkdirAll(path, 0755); err != nil {
		return false, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", path).
			WithDetail("path", path)
	}
	return true, nil
}

// EnsureAll materializes every startup directory of the layout and returns
// the ones that had to be created
func (r *Registry) EnsureAll(layout *Layout) ([]string, error) {
	var created []string
	for _, dir := range layout.Dirs() {
		ok, err := r.EnsureDirectory(dir)
		if err != nil {
			return created, err
		}
		if ok {
			created = append(created, dir)
		}
	}
	return created, nil
}
