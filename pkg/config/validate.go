package config

import (
	"strings"

	"github.com/arthur-debert/plugboot/pkg/errors"
)

// Validate rejects configurations the installer cannot run with
func (c *Config) Validate() error {
	required := map[string]string{
		"tools.interpreter":     c.Tools.Interpreter,
		"tools.git":             c.Tools.Git,
		"plugin.repository":     c.Plugin.Repository,
		"plugin.setup_module":   c.Plugin.SetupModule,
		"plugin.setup_function": c.Plugin.SetupFunction,
		"models.repository":     c.Models.Repository,
	}
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			return errors.Newf(errors.ErrConfigValid, "%s must not be empty", key).WithDetail("key", key)
		}
	}

	phrases := map[string][]string{
		"phrases.install": c.Phrases.Install,
		"phrases.clone":   c.Phrases.Clone,
		"phrases.venv":    c.Phrases.Venv,
	}
	for key, set := range phrases {
		if len(set) == 0 {
			return errors.Newf(errors.ErrConfigValid, "%s must list at least one phrase", key).WithDetail("key", key)
		}
	}

	for _, pkg := range c.Install.Packages {
		if strings.TrimSpace(pkg) == "" {
			return errors.New(errors.ErrConfigValid, "install.packages contains an empty entry")
		}
	}

	if c.Download.ChunkSize < 0 {
		return errors.Newf(errors.ErrConfigValid, "download.chunk_size must not be negative, got %d", c.Download.ChunkSize)
	}
	if _, err := c.Download.HeaderTimeoutDuration(); err != nil {
		return errors.Wrapf(err, errors.ErrConfigValid, "download.header_timeout is not a duration")
	}
	return nil
}
