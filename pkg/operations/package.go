package operations

import (
	"context"
	"strings"

	"github.com/arthur-debert/plugboot/pkg/errors"
	"github.com/arthur-debert/plugboot/pkg/logging"
	"github.com/arthur-debert/plugboot/pkg/outcome"
	"github.com/arthur-debert/plugboot/pkg/report"
	"github.com/arthur-debert/plugboot/pkg/runner"
	"github.com/arthur-debert/plugboot/pkg/toolcmd"
	"github.com/rs/zerolog"
)

// MsgPipMissing is the message of the TOOL_MISSING error for pip
const MsgPipMissing = "python pip package manager does not exist, please install"

// PackageOperation installs and removes packages through pip
type PackageOperation struct {
	runner   runner.Runner
	pip      toolcmd.Pip
	phrases  outcome.PhraseSet
	reporter report.Reporter
	logger   zerolog.Logger
	version  string
}

// NewPackageOperation probes pip once and fails with TOOL_MISSING when the
// probe prints nothing
func NewPackageOperation(ctx context.Context, r runner.Runner, pip toolcmd.Pip, opts ...Option) (*PackageOperation, error) {
	s := applyOptions("operations.package", opts)
	op := &PackageOperation{
		runner:   r,
		pip:      pip,
		phrases:  s.installPhrases,
		reporter: s.reporter,
		logger:   logging.GetLogger("operations.package").With().Str("interpreter", pip.Interpreter()).Logger(),
	}

	result, err := r.Run(ctx, pip.ProbeVersion())
	if err != nil {
		return nil, err
	}
	if result.Empty() {
		return nil, errors.New(errors.ErrToolMissing, MsgPipMissing).
			WithDetail("interpreter", pip.Interpreter())
	}

	op.version = result.Message()
	op.logger.Debug().Str("version", op.version).Msg("Package manager found")
	return op, nil
}

// Pip returns the command builder this operation runs
func (o *PackageOperation) Pip() toolcmd.Pip {
	return o.pip
}

// Version returns the probe output captured at construction
func (o *PackageOperation) Version() string {
	return o.version
}

// CheckExists queries pip for the bare package name. Only a "not found"
// answer means absent; any other output counts as present.
func (o *PackageOperation) CheckExists(ctx context.Context, name string) (bool, error) {
	cmd, err := o.pip.Show(toolcmd.BareName(name))
	if err != nil {
		return false, err
	}

	result, err := o.runner.Run(ctx, cmd)
	if err != nil {
		return false, err
	}

	exists := !strings.Contains(result.Message(), outcome.NotFoundPhrase)
	o.logger.Debug().Str("package", name).Bool("exists", exists).Msg("Checked package")
	return exists, nil
}

// CheckInstall installs name unless it is already present. The pin is kept
// for the install. A failed install is reported and yields false, nil.
func (o *PackageOperation) CheckInstall(ctx context.Context, name string) (bool, error) {
	exists, err := o.CheckExists(ctx, name)
	if err != nil {
		return false, err
	}
	if exists {
		o.logger.Info().Str("package", name).Msg("Package already installed")
		return true, nil
	}

	cmd, err := o.pip.Install(name)
	if err != nil {
		return false, err
	}
	return o.mutate(ctx, cmd, name, "install")
}

// Remove uninstalls name, pin included, when it is present. An absent
// package yields false, nil without running anything else.
func (o *PackageOperation) Remove(ctx context.Context, name string) (bool, error) {
	exists, err := o.CheckExists(ctx, name)
	if err != nil {
		return false, err
	}
	if !exists {
		o.logger.Info().Str("package", name).Msg("Package not installed, nothing to remove")
		return false, nil
	}

	cmd, err := o.pip.Remove(name)
	if err != nil {
		return false, err
	}
	return o.mutate(ctx, cmd, name, "remove")
}

func (o *PackageOperation) mutate(ctx context.Context, cmd runner.CommandVector, name, action string) (bool, error) {
	result, err := o.runner.Run(ctx, cmd)
	if err != nil {
		return false, err
	}

	phrase, ok := outcome.Match(result.Message(), o.phrases)
	if !ok {
		o.logger.Warn().Str("package", name).Str("action", action).Int("exitCode", result.ExitCode).Msg("Package command failed")
		o.reporter.Error(result.Message())
		return false, nil
	}

	o.logger.Info().Str("package", name).Str("action", action).Str("matched", phrase).Msg("Package command succeeded")
	return true, nil
}
