package config

import (
	"time"

	"github.com/arthur-debert/plugboot/pkg/outcome"
	"github.com/arthur-debert/plugboot/pkg/paths"
)

// Config is the effective plugboot configuration
type Config struct {
	// Root overrides the working root; set through PLUGBOOT_ROOT
	Root     string            `koanf:"root" toml:"root,omitempty"`
	Tools    Tools             `koanf:"tools" toml:"tools"`
	Phrases  Phrases           `koanf:"phrases" toml:"phrases"`
	Layout   paths.LayoutNames `koanf:"layout" toml:"layout"`
	Plugin   Plugin            `koanf:"plugin" toml:"plugin"`
	Models   Models            `koanf:"models" toml:"models"`
	Download Download          `koanf:"download" toml:"download"`
	Install  Install           `koanf:"install" toml:"install"`
}

// Tools names the external executables
type Tools struct {
	Interpreter string `koanf:"interpreter" toml:"interpreter"`
	Git         string `koanf:"git" toml:"git"`
	Encoding    string `koanf:"encoding" toml:"encoding"`
}

// Phrases are the success phrases per tool
type Phrases struct {
	Install []string `koanf:"install" toml:"install"`
	Clone   []string `koanf:"clone" toml:"clone"`
	Venv    []string `koanf:"venv" toml:"venv"`
}

// InstallSet returns the install phrases as a PhraseSet
func (p Phrases) InstallSet() outcome.PhraseSet { return outcome.NewPhraseSet(p.Install...) }

// CloneSet returns the clone phrases as a PhraseSet
func (p Phrases) CloneSet() outcome.PhraseSet { return outcome.NewPhraseSet(p.Clone...) }

// VenvSet returns the virtualenv phrases as a PhraseSet
func (p Phrases) VenvSet() outcome.PhraseSet { return outcome.NewPhraseSet(p.Venv...) }

// Plugin describes the GIMP plugin checkout
type Plugin struct {
	Repository    string `koanf:"repository" toml:"repository"`
	SetupModule   string `koanf:"setup_module" toml:"setup_module"`
	SetupFunction string `koanf:"setup_function" toml:"setup_function"`
	WeightsDir    string `koanf:"weights_dir" toml:"weights_dir"`
}

// SetupCode is the python snippet that prepares the plugin weights
func (p Plugin) SetupCode() string {
	return "import " + p.SetupModule + "; " + p.SetupModule + "." + p.SetupFunction + "()"
}

// Models describes the model repository and the extra files it needs
type Models struct {
	Repository string   `koanf:"repository" toml:"repository"`
	Downloads  []string `koanf:"downloads" toml:"downloads"`
}

// Download tunes the HTTP downloader
type Download struct {
	ChunkSize int `koanf:"chunk_size" toml:"chunk_size"`
	// HeaderTimeout bounds the wait for response headers, never the body
	HeaderTimeout string `koanf:"header_timeout" toml:"header_timeout"`
	UserAgent     string `koanf:"user_agent" toml:"user_agent"`
}

// HeaderTimeoutDuration parses HeaderTimeout; empty means wait forever
func (d Download) HeaderTimeoutDuration() (time.Duration, error) {
	if d.HeaderTimeout == "" {
		return 0, nil
	}
	return time.ParseDuration(d.HeaderTimeout)
}

// Install lists what goes into the virtual environment
type Install struct {
	Packages      []string `koanf:"packages" toml:"packages"`
	InstallPlugin bool     `koanf:"install_plugin" toml:"install_plugin"`
	Reinstall     bool     `koanf:"reinstall" toml:"reinstall"`
	DryRun        bool     `koanf:"dry_run" toml:"dry_run"`
}
