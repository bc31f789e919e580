// Package runner executes external tools and captures their text output.
//
// A Runner never treats a non-zero exit status as an error. Whether a command
// worked is decided by inspecting its text (see pkg/outcome), because the
// wrapped tools only signal success through human-readable messages.
package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/arthur-debert/plugboot/pkg/errors"
	"github.com/arthur-debert/plugboot/pkg/logging"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultEncoding is used to decode tool output when none is configured
const DefaultEncoding = "utf-8"

// ExitNotStarted is recorded when the tool could not be started at all
const ExitNotStarted = 127

// CommandVector is one external invocation: the tool followed by its arguments
type CommandVector []string

// Validate fails when the vector cannot name a tool
func (c CommandVector) Validate() error {
	if len(c) == 0 {
		return errors.New(errors.ErrInvalidCommand, "command vector is empty")
	}
	if strings.TrimSpace(c[0]) == "" {
		return errors.New(errors.ErrInvalidCommand, "command vector has no tool")
	}
	return nil
}

// Tool returns the first token
func (c CommandVector) Tool() string {
	if len(c) == 0 {
		return ""
	}
	return c[0]
}

// Args returns every token after the tool
func (c CommandVector) Args() []string {
	if len(c) < 2 {
		return nil
	}
	return c[1:]
}

// String renders the vector for logs and messages
func (c CommandVector) String() string {
	return strings.Join(c, " ")
}

// ExecutionResult holds the decoded, right-trimmed output of one invocation
type ExecutionResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Message returns the text used for classification. Standard error wins
// whenever it is non-empty, even if the process exited successfully.
func (r ExecutionResult) Message() string {
	if r.Stderr != "" {
		return r.Stderr
	}
	return r.Stdout
}

// Empty reports whether the command produced no output on either stream
func (r ExecutionResult) Empty() bool {
	return r.Message() == ""
}

// Runner executes a command vector and waits for it to finish
type Runner interface {
	Run(ctx context.Context, cmd CommandVector) (ExecutionResult, error)
}

// ExecRunner runs commands on the local machine through os/exec
type ExecRunner struct {
	logger   zerolog.Logger
	encoding string
	dir      string
	env      []string
}

// Option configures an ExecRunner
type Option func(*ExecRunner)

// WithEncoding sets the text encoding used to decode both streams
func WithEncoding(name string) Option {
	return func(r *ExecRunner) {
		if name != "" {
			r.encoding = name
		}
	}
}

// WithDir sets the working directory of spawned commands
func WithDir(dir string) Option {
	return func(r *ExecRunner) {
		r.dir = dir
	}
}

// WithEnv appends KEY=VALUE pairs to the inherited environment
func WithEnv(kv ...string) Option {
	return func(r *ExecRunner) {
		r.env = append(r.env, kv...)
	}
}

// NewExecRunner creates a runner for the local machine
func NewExecRunner(opts ...Option) *ExecRunner {
	r := &ExecRunner{
		logger:   logging.GetLogger("runner"),
		encoding: DefaultEncoding,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Encoding returns the configured encoding name
func (r *ExecRunner) Encoding() string {
	return r.encoding
}

// Run executes cmd and returns its decoded output. A tool that cannot be
// started yields an empty result with ExitNotStarted and no error, so callers
// probing for a tool see "no output".
func (r *ExecRunner) Run(ctx context.Context, cmd CommandVector) (ExecutionResult, error) {
	if err := cmd.Validate(); err != nil {
		return ExecutionResult{}, err
	}

	enc, err := lookupEncoding(r.encoding)
	if err != nil {
		return ExecutionResult{}, err
	}

	logging.LogCommand(cmd.Tool(), cmd.Args())

	c := exec.CommandContext(ctx, cmd.Tool(), cmd.Args()...)
	if r.dir != "" {
		c.Dir = r.dir
	}
	if len(r.env) > 0 {
		c.Env = append(os.Environ(), r.env...)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	runErr := c.Run()
	duration := time.Since(start)

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if !stderrors.As(runErr, &exitErr) {
			r.logger.Debug().
				Err(runErr).
				Str("command", cmd.Tool()).
				Msg("Command could not be started")
			return ExecutionResult{ExitCode: ExitNotStarted, Duration: duration}, nil
		}
		exitCode = exitErr.ExitCode()
	}

	result := ExecutionResult{ExitCode: exitCode, Duration: duration}
	if result.Stdout, err = decode(enc, stdout.Bytes()); err != nil {
		return result, errors.Wrapf(err, errors.ErrCommandExecute, "failed to decode stdout of %s", cmd.Tool())
	}
	if result.Stderr, err = decode(enc, stderr.Bytes()); err != nil {
		return result, errors.Wrapf(err, errors.ErrCommandExecute, "failed to decode stderr of %s", cmd.Tool())
	}

	r.logger.Debug().
		Str("command", cmd.String()).
		Int("exitCode", exitCode).
		Dur("duration", duration).
		Msg("Command finished")

	return result, nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidCommand, "unknown output encoding %q", name)
	}
	return enc, nil
}

func decode(enc encoding.Encoding, raw []byte) (string, error) {
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return strings.TrimRightFunc(string(decoded), isTrailingSpace), nil
}

func isTrailingSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// Verify interface compliance
var _ Runner = (*ExecRunner)(nil)
