package toolcmd

import (
	"strings"

	"github.com/arthur-debert/plugboot/pkg/errors"
	"github.com/arthur-debert/plugboot/pkg/runner"
)

// DefaultGit is used when no source-control tool is configured
const DefaultGit = "git"

// Git builds git invocations
type Git struct {
	tool string
}

// NewGit creates a builder for the given git executable
func NewGit(tool string) Git {
	if strings.TrimSpace(tool) == "" {
		tool = DefaultGit
	}
	return Git{tool: tool}
}

// Tool returns the git executable
func (g Git) Tool() string {
	if g.tool == "" {
		return DefaultGit
	}
	return g.tool
}

// ProbeVersion asks git for its version
func (g Git) ProbeVersion() runner.CommandVector {
	return runner.CommandVector{g.Tool(), "--version"}
}

// Clone builds [git clone url] with destination appended when non-empty
func (g Git) Clone(url, destination string) (runner.CommandVector, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "repository url must not be empty")
	}
	cmd := runner.CommandVector{g.Tool(), "clone", url}
	if destination != "" {
		cmd = append(cmd, destination)
	}
	return cmd, nil
}
