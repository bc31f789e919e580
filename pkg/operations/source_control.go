package operations

import (
	"context"
	"fmt"

	"github.com/arthur-debert/plugboot/pkg/errors"
	"github.com/arthur-debert/plugboot/pkg/filesystem"
	"github.com/arthur-debert/plugboot/pkg/logging"
	"github.com/arthur-debert/plugboot/pkg/outcome"
	"github.com/arthur-debert/plugboot/pkg/report"
	"github.com/arthur-debert/plugboot/pkg/runner"
	"github.com/arthur-debert/plugboot/pkg/toolcmd"
	"github.com/rs/zerolog"
)

// MsgGitMissing is the message of the TOOL_MISSING error for git
const MsgGitMissing = "git source control tool does not exist, please install"

// SourceControlOperation clones repositories through git
type SourceControlOperation struct {
	runner   runner.Runner
	git      toolcmd.Git
	phrases  outcome.PhraseSet
	reporter report.Reporter
	fs       filesystem.FS
	logger   zerolog.Logger
	version  string
}

// NewSourceControlOperation probes git once and fails with TOOL_MISSING when
// the probe prints nothing
func NewSourceControlOperation(ctx context.Context, r runner.Runner, git toolcmd.Git, opts ...Option) (*SourceControlOperation, error) {
	s := applyOptions("operations.git", opts)

	result, err := r.Run(ctx, git.ProbeVersion())
	if err != nil {
		return nil, err
	}
	if result.Empty() {
		return nil, errors.New(errors.ErrToolMissing, MsgGitMissing).
			WithDetail("tool", git.Tool())
	}

	op := &SourceControlOperation{
		runner:   r,
		git:      git,
		phrases:  s.clonePhrases,
		reporter: s.reporter,
		fs:       s.fs,
		logger:   logging.GetLogger("operations.git"),
		version:  result.Message(),
	}
	op.logger.Debug().Str("version", op.version).Msg("Source control tool found")
	return op, nil
}

// Version returns the probe output captured at construction
func (o *SourceControlOperation) Version() string {
	return o.version
}

// Clone always runs the clone. Output without a clone phrase is a fatal
// CLONE_FAILED error carrying that output.
func (o *SourceControlOperation) Clone(ctx context.Context, url, destination string) error {
	cmd, err := o.git.Clone(url, destination)
	if err != nil {
		return err
	}

	o.reporter.Info(fmt.Sprintf("Cloning %s to %s", url, destination))

	result, err := o.runner.Run(ctx, cmd)
	if err != nil {
		return err
	}

	if !outcome.Classify(result, o.phrases) {
		return errors.Newf(errors.ErrCloneFailed, "failed to clone %s: %s", url, result.Message()).
			WithDetail("url", url).
			WithDetail("destination", destination).
			WithDetail("output", result.Message()).
			WithDetail("exitCode", result.ExitCode)
	}

	o.logger.Info().Str("url", url).Str("destination", destination).Msg("Repository cloned")
	return nil
}

// CloneIfAbsent skips the clone when destination is a non-empty directory and
// reports whether a clone ran
func (o *SourceControlOperation) CloneIfAbsent(ctx context.Context, url, destination string) (bool, error) {
	if destination != "" && filesystem.IsDir(o.fs, destination) {
		empty, err := filesystem.IsEmptyDir(o.fs, destination)
		if err != nil {
			return false, errors.Wrapf(err, errors.ErrCloneFailed, "failed to inspect %s", destination)
		}
		if !empty {
			o.logger.Info().Str("destination", destination).Msg("Destination already populated, skipping clone")
			return false, nil
		}
	}

	if err := o.Clone(ctx, url, destination); err != nil {
		return false, err
	}
	return true, nil
}
