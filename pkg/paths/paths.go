package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/plugboot/pkg/errors"
)

// Environment variable names
const (
	// EnvRoot overrides the working root
	EnvRoot = "PLUGBOOT_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directory names, overridable through configuration
const (
	DefaultTempDir       = "tmp"
	DefaultPluginDir     = "openvino-ai"
	DefaultUserPluginDir = "openvino-ai-plugins-gimp"
	DefaultWeightsDir    = "weights"
	DefaultModelDir      = "stable-diffusion-ov"
	DefaultVenvName      = "gimpenv3"
)

// LayoutNames are the directory names the layout is built from
type LayoutNames struct {
	TempDir       string `koanf:"temp_dir" toml:"temp_dir" yaml:"temp_dir"`
	PluginDir     string `koanf:"plugin_dir" toml:"plugin_dir" yaml:"plugin_dir"`
	UserPluginDir string `koanf:"user_plugin_dir" toml:"user_plugin_dir" yaml:"user_plugin_dir"`
	WeightsDir    string `koanf:"weights_dir" toml:"weights_dir" yaml:"weights_dir"`
	ModelDir      string `koanf:"model_dir" toml:"model_dir" yaml:"model_dir"`
	VenvName      string `koanf:"venv_name" toml:"venv_name" yaml:"venv_name"`
}

// DefaultNames returns the stock layout names
func DefaultNames() LayoutNames {
	return LayoutNames{
		TempDir:       DefaultTempDir,
		PluginDir:     DefaultPluginDir,
		UserPluginDir: DefaultUserPluginDir,
		WeightsDir:    DefaultWeightsDir,
		ModelDir:      DefaultModelDir,
		VenvName:      DefaultVenvName,
	}
}

func (n LayoutNames) withDefaults() LayoutNames {
	d := DefaultNames()
	if n.TempDir == "" {
		n.TempDir = d.TempDir
	}
	if n.PluginDir == "" {
		n.PluginDir = d.PluginDir
	}
	if n.UserPluginDir == "" {
		n.UserPluginDir = d.UserPluginDir
	}
	if n.WeightsDir == "" {
		n.WeightsDir = d.WeightsDir
	}
	if n.ModelDir == "" {
		n.ModelDir = d.ModelDir
	}
	if n.VenvName == "" {
		n.VenvName = d.VenvName
	}
	return n
}

// Layout is the fixed set of absolute directories plugboot works against
type Layout struct {
	WorkingRoot         string
	TempDir             string
	PluginDir           string
	VenvDir             string
	UserPluginDir       string
	UserWeightsDir      string
	UserWeightsModelDir string
}

// New computes the layout. An empty workingRoot falls back to PLUGBOOT_ROOT
// and then to the current directory; an empty home falls back to xdg.Home.
func New(workingRoot, home string, names LayoutNames) (*Layout, error) {
	names = names.withDefaults()

	root, err := resolveRoot(workingRoot)
	if err != nil {
		return nil, err
	}

	if home == "" {
		home = xdg.Home
	}
	if home == "" {
		return nil, errors.New(errors.ErrInvalidInput, "cannot determine user home directory")
	}
	home, err = filepath.Abs(ExpandHome(home))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for home directory")
	}

	pluginDir := filepath.Join(root, names.PluginDir)
	userPluginDir := filepath.Join(home, names.UserPluginDir)
	userWeightsDir := filepath.Join(userPluginDir, names.WeightsDir)

	return &Layout{
		WorkingRoot:         root,
		TempDir:             filepath.Join(root, names.TempDir),
		PluginDir:           pluginDir,
		VenvDir:             filepath.Join(pluginDir, names.VenvName),
		UserPluginDir:       userPluginDir,
		UserWeightsDir:      userWeightsDir,
		UserWeightsModelDir: filepath.Join(userWeightsDir, names.ModelDir),
	}, nil
}

func resolveRoot(workingRoot string) (string, error) {
	root := workingRoot
	if root == "" {
		root = os.Getenv(EnvRoot)
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to get current directory")
		}
		root = cwd
	}

	abs, err := filepath.Abs(ExpandHome(root))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for working root")
	}
	return abs, nil
}

// Dirs returns the directories materialized at startup, in creation order.
// The model directory is left to the clone that populates it.
func (l *Layout) Dirs() []string {
	return []string{l.PluginDir, l.TempDir, l.UserPluginDir, l.UserWeightsDir}
}

// Named returns every directory keyed by its logical name
func (l *Layout) Named() map[string]string {
	return map[string]string{
		"workingRoot":         l.WorkingRoot,
		"tempDir":             l.TempDir,
		"pluginDir":           l.PluginDir,
		"venvDir":             l.VenvDir,
		"userPluginDir":       l.UserPluginDir,
		"userWeightsDir":      l.UserWeightsDir,
		"userWeightsModelDir": l.UserWeightsModelDir,
	}
}

// VenvPython returns the interpreter inside a virtual environment
func VenvPython(venvDir string) string {
	return venvPython(venvDir, runtime.GOOS)
}

func venvPython(venvDir, goos string) string {
	if goos == "windows" {
		return filepath.Join(venvDir, "Scripts", "python.exe")
	}
	return filepath.Join(venvDir, "bin", "python")
}

// ExpandHome expands ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	// ~something is another user's home, leave it alone
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, strings.TrimLeft(path[2:], `/\`))
	}
	return path
}
