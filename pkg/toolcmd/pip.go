package toolcmd

import (
	"strings"

	"github.com/arthur-debert/plugboot/pkg/errors"
	"github.com/arthur-debert/plugboot/pkg/runner"
)

// DefaultInterpreter is used when no interpreter path is configured
const DefaultInterpreter = "python"

// pinSeparator separates a package name from its pinned version
const pinSeparator = "=="

// Pip builds pip invocations for one interpreter. It is a value type:
// switching interpreters yields a new Pip instead of mutating this one.
type Pip struct {
	interpreter string
}

// NewPip creates a builder running pip through the given interpreter
func NewPip(interpreter string) Pip {
	if strings.TrimSpace(interpreter) == "" {
		interpreter = DefaultInterpreter
	}
	return Pip{interpreter: interpreter}
}

// Interpreter returns the interpreter path prefixed to every command
func (p Pip) Interpreter() string {
	if p.interpreter == "" {
		return DefaultInterpreter
	}
	return p.interpreter
}

// WithInterpreter returns a builder bound to another interpreter
func (p Pip) WithInterpreter(interpreter string) Pip {
	return NewPip(interpreter)
}

func (p Pip) base() runner.CommandVector {
	return runner.CommandVector{p.Interpreter(), "-m", "pip"}
}

func (p Pip) with(args ...string) runner.CommandVector {
	return append(p.base(), args...)
}

// ProbeVersion asks pip for its version
func (p Pip) ProbeVersion() runner.CommandVector {
	return p.with("--version")
}

// InterpreterVersion asks the interpreter itself for its version
func (p Pip) InterpreterVersion() runner.CommandVector {
	return runner.CommandVector{p.Interpreter(), "--version"}
}

// Show queries an installed package. Pins are not stripped here; see BareName.
func (p Pip) Show(name string) (runner.CommandVector, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}
	return p.with("show", name), nil
}

// Install installs name, keeping any ==version pin verbatim
func (p Pip) Install(name string) (runner.CommandVector, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}
	return p.with("install", name), nil
}

// Remove uninstalls name without prompting
func (p Pip) Remove(name string) (runner.CommandVector, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}
	return p.with("uninstall", "-y", name), nil
}

// RunModule runs a python module, e.g. virtualenv
func (p Pip) RunModule(module string, args ...string) (runner.CommandVector, error) {
	if strings.TrimSpace(module) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "module name must not be empty")
	}
	cmd := runner.CommandVector{p.Interpreter(), "-m", module}
	return append(cmd, args...), nil
}

// Exec runs a snippet of python code
func (p Pip) Exec(code string) (runner.CommandVector, error) {
	if strings.TrimSpace(code) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "python code must not be empty")
	}
	return runner.CommandVector{p.Interpreter(), "-c", code}, nil
}

// BareName strips a ==version pin: "foo==1.2.3" becomes "foo"
func BareName(spec string) string {
	if i := strings.Index(spec, pinSeparator); i >= 0 {
		return spec[:i]
	}
	return spec
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrInvalidInput, "package name must not be empty")
	}
	return nil
}
