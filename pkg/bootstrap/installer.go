package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/arthur-debert/plugboot/pkg/config"
	"github.com/arthur-debert/plugboot/pkg/download"
	"github.com/arthur-debert/plugboot/pkg/errors"
	"github.com/arthur-debert/plugboot/pkg/filesystem"
	"github.com/arthur-debert/plugboot/pkg/logging"
	"github.com/arthur-debert/plugboot/pkg/operations"
	"github.com/arthur-debert/plugboot/pkg/outcome"
	"github.com/arthur-debert/plugboot/pkg/paths"
	"github.com/arthur-debert/plugboot/pkg/report"
	"github.com/arthur-debert/plugboot/pkg/runner"
	"github.com/arthur-debert/plugboot/pkg/toolcmd"
	"github.com/rs/zerolog"
)

// Options change how the recipe runs
type Options struct {
	// DryRun walks the plan without running anything
	DryRun bool
	// Reinstall recreates the virtual environment with --clear
	Reinstall bool
}

// Installer runs the recipe against one layout
type Installer struct {
	cfg        *config.Config
	layout     *paths.Layout
	opts       Options
	runner     runner.Runner
	fs         filesystem.FS
	reporter   report.Reporter
	downloader *download.Downloader
	logger     zerolog.Logger
}

// Dependency overrides the collaborators an Installer uses
type Dependency func(*Installer)

// WithRunner sets the process runner
func WithRunner(r runner.Runner) Dependency {
	return func(i *Installer) { i.runner = r }
}

// WithFS sets the filesystem used for directories, weights and downloads
func WithFS(fs filesystem.FS) Dependency {
	return func(i *Installer) { i.fs = fs }
}

// WithReporter sets where user-visible messages go
func WithReporter(r report.Reporter) Dependency {
	return func(i *Installer) { i.reporter = r }
}

// WithDownloader replaces the HTTP downloader
func WithDownloader(d *download.Downloader) Dependency {
	return func(i *Installer) { i.downloader = d }
}

// New creates an installer. Collaborators default to the local machine.
func New(cfg *config.Config, layout *paths.Layout, opts Options, deps ...Dependency) (*Installer, error) {
	i := &Installer{
		cfg:    cfg,
		layout: layout,
		opts:   opts,
		logger: logging.GetLogger("bootstrap"),
	}
	for _, dep := range deps {
		dep(i)
	}

	if i.runner == nil {
		i.runner = runner.NewExecRunner(runner.WithEncoding(cfg.Tools.Encoding))
	}
	if i.fs == nil {
		i.fs = filesystem.NewOS()
	}
	if i.reporter == nil {
		i.reporter = report.NewLogReporter("bootstrap")
	}
	if i.downloader == nil {
		d, err := NewDownloader(cfg, i.fs, i.reporter)
		if err != nil {
			return nil, err
		}
		i.downloader = d
	}
	return i, nil
}

// NewDownloader builds the downloader described by the [download] settings
func NewDownloader(cfg *config.Config, fs filesystem.FS, r report.Reporter) (*download.Downloader, error) {
	headerTimeout, err := cfg.Download.HeaderTimeoutDuration()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigValid, "download.header_timeout is not a duration")
	}
	return download.New(fs,
		download.WithClient(download.NewClient(headerTimeout)),
		download.WithChunkSize(cfg.Download.ChunkSize),
		download.WithUserAgent(cfg.Download.UserAgent),
		download.WithReporter(r),
	), nil
}

// run holds the state threaded through the steps of one Run
type run struct {
	report  *Report
	sysOp   *operations.PackageOperation
	venvOp  *operations.PackageOperation
	gitOp   *operations.SourceControlOperation
	sysPip  toolcmd.Pip
	venvPip toolcmd.Pip
}

type stepFunc func(ctx context.Context, r *run) (Status, string, error)

// Run executes the recipe. The first fatal error stops the run; the report
// covers every step reached so far.
func (i *Installer) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	state := &run{report: &Report{DryRun: i.opts.DryRun}}
	defer func() { state.report.Duration = time.Since(start) }()

	funcs := map[string]stepFunc{
		StepDirectories:    i.ensureDirectories,
		StepProbe:          i.probeTools,
		StepInterpreter:    i.logInterpreter,
		StepPluginClone:    i.clonePlugin,
		StepVirtualenvTool: i.installVirtualenv,
		StepVenvCreate:     i.createVenv,
		StepVenvSwitch:     i.switchToVenv,
		StepPackages:       i.installPackages,
		StepSetupHook:      i.runSetupHook,
		StepWeightsCopy:    i.copyWeights,
		StepModelClone:     i.cloneModels,
		StepDownloads:      i.downloadFiles,
	}

	for _, step := range i.Plan() {
		if err := ctx.Err(); err != nil {
			return state.report, errors.Wrap(err, errors.ErrInternal, "install cancelled")
		}

		if i.opts.DryRun {
			i.logger.Info().Str("step", step.Name).Msg(step.Description)
			i.reporter.Info("[dry-run] " + step.Description)
			state.report.record(step, StatusPlanned, "")
			continue
		}

		done := logging.LogOperationStart(i.logger, step.Name)
		status, detail, err := funcs[step.Name](ctx, state)
		done()
		if err != nil {
			i.logger.Error().Err(err).Str("step", step.Name).Msg("Step failed")
			return state.report, err
		}
		state.report.record(step, status, detail)
	}

	return state.report, nil
}

func (i *Installer) ensureDirectories(_ context.Context, r *run) (Status, string, error) {
	created, err := paths.NewRegistry(i.fs).EnsureAll(i.layout)
	r.report.Created = created
	if err != nil {
		return "", "", err
	}
	if len(created) == 0 {
		return StatusSkipped, "all directories exist", nil
	}
	return StatusDone, fmt.Sprintf("created %d directories", len(created)), nil
}

func (i *Installer) probeTools(ctx context.Context, r *run) (Status, string, error) {
	r.sysPip = toolcmd.NewPip(i.cfg.Tools.Interpreter)

	sysOp, err := operations.NewPackageOperation(ctx, i.runner, r.sysPip, i.packageOptions()...)
	if err != nil {
		return "", "", err
	}
	gitOp, err := operations.NewSourceControlOperation(ctx, i.runner, toolcmd.NewGit(i.cfg.Tools.Git),
		operations.WithClonePhrases(i.cfg.Phrases.CloneSet()),
		operations.WithReporter(i.reporter),
		operations.WithFS(i.fs),
	)
	if err != nil {
		return "", "", err
	}

	r.sysOp, r.gitOp = sysOp, gitOp
	return StatusDone, sysOp.Version() + "; " + gitOp.Version(), nil
}

func (i *Installer) packageOptions() []operations.Option {
	return []operations.Option{
		operations.WithInstallPhrases(i.cfg.Phrases.InstallSet()),
		operations.WithReporter(i.reporter),
	}
}

func (i *Installer) logInterpreter(ctx context.Context, r *run) (Status, string, error) {
	version, err := i.interpreterVersion(ctx, r.sysPip)
	if err != nil {
		return "", "", err
	}
	return StatusDone, version, nil
}

func (i *Installer) interpreterVersion(ctx context.Context, pip toolcmd.Pip) (string, error) {
	result, err := i.runner.Run(ctx, pip.InterpreterVersion())
	if err != nil {
		return "", err
	}
	i.logger.Debug().
		Str("version", result.Message()).
		Str("interpreter", pip.Interpreter()).
		Msg("Running python")
	return result.Message(), nil
}

func (i *Installer) clonePlugin(ctx context.Context, r *run) (Status, string, error) {
	return i.cloneIfAbsent(ctx, r, i.cfg.Plugin.Repository, i.layout.PluginDir)
}

func (i *Installer) cloneModels(ctx context.Context, r *run) (Status, string, error) {
	return i.cloneIfAbsent(ctx, r, i.cfg.Models.Repository, i.layout.UserWeightsModelDir)
}

func (i *Installer) cloneIfAbsent(ctx context.Context, r *run, url, dest string) (Status, string, error) {
	cloned, err := r.gitOp.CloneIfAbsent(ctx, url, dest)
	if err != nil {
		return "", "", err
	}
	if !cloned {
		return StatusSkipped, dest + " already populated", nil
	}
	return StatusDone, "cloned into " + dest, nil
}

func (i *Installer) installVirtualenv(ctx context.Context, r *run) (Status, string, error) {
	ok, err := r.sysOp.CheckInstall(ctx, VirtualenvPackage)
	if err != nil {
		return "", "", err
	}
	if !ok {
		return "", "", errors.Newf(errors.ErrInstallFailed, "could not install %s package", VirtualenvPackage).
			WithDetail("package", VirtualenvPackage)
	}
	return StatusDone, "", nil
}

func (i *Installer) createVenv(ctx context.Context, r *run) (Status, string, error) {
	venvDir := i.layout.VenvDir
	if filesystem.IsDir(i.fs, venvDir) && !i.opts.Reinstall {
		return StatusSkipped, venvDir + " exists", nil
	}

	args := []string{venvDir}
	if i.opts.Reinstall {
		args = []string{"--clear", venvDir}
	}
	cmd, err := r.sysPip.RunModule(VirtualenvPackage, args...)
	if err != nil {
		return "", "", err
	}

	result, err := i.runner.Run(ctx, cmd)
	if err != nil {
		return "", "", err
	}
	if !outcome.Classify(result, i.cfg.Phrases.VenvSet()) {
		return "", "", errors.New(errors.ErrVenvCreate, "could not install virtual environment").
			WithDetail("path", venvDir).
			WithDetail("output", result.Message())
	}
	return StatusDone, "created " + venvDir, nil
}

func (i *Installer) switchToVenv(ctx context.Context, r *run) (Status, string, error) {
	r.venvPip = r.sysPip.WithInterpreter(paths.VenvPython(i.layout.VenvDir))

	version, err := i.interpreterVersion(ctx, r.venvPip)
	if err != nil {
		return "", "", err
	}

	venvOp, err := operations.NewPackageOperation(ctx, i.runner, r.venvPip, i.packageOptions()...)
	if err != nil {
		return "", "", err
	}
	r.venvOp = venvOp
	return StatusDone, fmt.Sprintf("%s at %s", version, r.venvPip.Interpreter()), nil
}

// packages lists what goes into the venv, the plugin checkout last
func (i *Installer) packages() []string {
	pkgs := append([]string(nil), i.cfg.Install.Packages...)
	if i.cfg.Install.InstallPlugin {
		pkgs = append(pkgs, i.layout.PluginDir)
	}
	return pkgs
}

func (i *Installer) installPackages(ctx context.Context, r *run) (Status, string, error) {
	for _, pkg := range i.packages() {
		ok, err := r.venvOp.CheckInstall(ctx, pkg)
		if err != nil {
			return "", "", err
		}
		if !ok {
			return "", "", errors.Newf(errors.ErrInstallFailed, "could not install %s package", pkg).
				WithDetail("package", pkg)
		}
		r.report.Installed = append(r.report.Installed, pkg)
	}
	return StatusDone, fmt.Sprintf("%d packages", len(r.report.Installed)), nil
}

func (i *Installer) runSetupHook(ctx context.Context, r *run) (Status, string, error) {
	cmd, err := r.venvPip.Exec(i.cfg.Plugin.SetupCode())
	if err != nil {
		return "", "", err
	}

	i.logger.Debug().Str("module", i.cfg.Plugin.SetupModule).Msg("Importing plugin weights")
	result, err := i.runner.Run(ctx, cmd)
	if err != nil {
		return "", "", err
	}
	if msg := result.Message(); msg != "" {
		i.reporter.Info(msg)
	}
	return StatusDone, "", nil
}

func (i *Installer) weightsSource() string {
	return filepath.Join(i.layout.PluginDir, i.cfg.Plugin.WeightsDir)
}

func (i *Installer) copyWeights(_ context.Context, _ *run) (Status, string, error) {
	src := i.weightsSource()
	if !filesystem.IsDir(i.fs, src) {
		return "", "", errors.Newf(errors.ErrCopyFailed, "cannot copy tree %s: not a directory", src).
			WithDetail("source", src)
	}

	n, err := filesystem.CopyTree(i.fs, src, i.layout.UserWeightsDir)
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrCopyFailed, "failed to copy %s into %s", src, i.layout.UserWeightsDir)
	}
	return StatusDone, fmt.Sprintf("copied %d files", n), nil
}

func (i *Installer) downloadFiles(ctx context.Context, r *run) (Status, string, error) {
	dir := i.layout.UserWeightsModelDir
	fetched := 0
	for _, url := range i.cfg.Models.Downloads {
		missing, err := download.Missing(i.fs, url, dir)
		if err != nil {
			return "", "", err
		}
		if !missing {
			i.logger.Debug().Str("url", url).Msg("Model file present, skipping")
			continue
		}

		result, err := i.downloader.Download(ctx, url, dir)
		if err != nil {
			return "", "", err
		}
		fetched++
		if !result.OK {
			r.report.FailedDownloads = append(r.report.FailedDownloads, result)
			continue
		}
		r.report.Downloaded = append(r.report.Downloaded, result)
	}

	if fetched == 0 {
		return StatusSkipped, "all model files present", nil
	}
	return StatusDone, fmt.Sprintf("%d downloaded, %d failed", len(r.report.Downloaded), len(r.report.FailedDownloads)), nil
}
