package plugboot

import (
	"fmt"
	"os"

	"github.com/arthur-debert/plugboot/pkg/config"
	"github.com/arthur-debert/plugboot/pkg/filesystem"
	"github.com/arthur-debert/plugboot/pkg/paths"
	"github.com/arthur-debert/plugboot/pkg/runner"
	"github.com/arthur-debert/plugboot/pkg/ui"
	"github.com/spf13/cobra"
)

// app holds the global flags and the collaborators shared by every command.
// runner, fs and home are nil/empty outside tests.
type app struct {
	verbosity    int
	root         string
	userConfig   string
	noUserConfig bool
	format       string

	runner runner.Runner
	fs     filesystem.FS
	home   string
}

func (a *app) workingRoot() string {
	if a.root != "" {
		return a.root
	}
	return os.Getenv(paths.EnvRoot)
}

func (a *app) loadConfig(overrides map[string]interface{}) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		WorkingRoot:    a.workingRoot(),
		UserConfigPath: a.userConfig,
		SkipUserConfig: a.noUserConfig,
		Overrides:      overrides,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

func (a *app) layout(cfg *config.Config) (*paths.Layout, error) {
	root := a.root
	if root == "" {
		root = cfg.Root
	}
	return paths.New(root, a.home, cfg.Layout)
}

func (a *app) outputFormat() (ui.Format, error) {
	f, err := ui.ParseFormat(a.format)
	if err != nil {
		return ui.FormatText, fmt.Errorf(MsgErrFormat, err)
	}
	return ui.Resolve(f, os.Stdout), nil
}

func (a *app) processRunner(cfg *config.Config) runner.Runner {
	if a.runner != nil {
		return a.runner
	}
	return runner.NewExecRunner(runner.WithEncoding(cfg.Tools.Encoding))
}

func (a *app) fileSystem() filesystem.FS {
	if a.fs != nil {
		return a.fs
	}
	return filesystem.NewOS()
}

// env bundles what most commands need
type env struct {
	cfg      *config.Config
	layout   *paths.Layout
	format   ui.Format
	reporter *ui.Reporter
}

func (a *app) setup(cmd *cobra.Command, overrides map[string]interface{}) (*env, error) {
	format, err := a.outputFormat()
	if err != nil {
		return nil, err
	}
	cfg, err := a.loadConfig(overrides)
	if err != nil {
		return nil, err
	}
	layout, err := a.layout(cfg)
	if err != nil {
		return nil, err
	}
	return &env{
		cfg:      cfg,
		layout:   layout,
		format:   format,
		reporter: ui.NewReporter(cmd.OutOrStdout(), format),
	}, nil
}
