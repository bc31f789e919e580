package testutil

import (
	"context"

	"github.com/arthur-debert/plugboot/pkg/runner"
	"github.com/stretchr/testify/mock"
)

// MockRunner implements runner.Runner for testing
type MockRunner struct {
	mock.Mock
}

// NewMockRunner creates an empty mock runner
func NewMockRunner() *MockRunner {
	return &MockRunner{}
}

// Run records the call and returns the configured result
func (m *MockRunner) Run(ctx context.Context, cmd runner.CommandVector) (runner.ExecutionResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(runner.ExecutionResult), args.Error(1)
}

// OnCommand expects exactly cmd and answers with result
func (m *MockRunner) OnCommand(cmd runner.CommandVector, result runner.ExecutionResult) *mock.Call {
	return m.On("Run", mock.Anything, cmd).Return(result, nil)
}

// OnCommandError expects cmd and fails the call with err
func (m *MockRunner) OnCommandError(cmd runner.CommandVector, err error) *mock.Call {
	return m.On("Run", mock.Anything, cmd).Return(runner.ExecutionResult{}, err)
}

// Commands returns every command vector the mock received, in order
func (m *MockRunner) Commands() []runner.CommandVector {
	var cmds []runner.CommandVector
	for _, call := range m.Calls {
		if call.Method != "Run" {
			continue
		}
		cmds = append(cmds, call.Arguments.Get(1).(runner.CommandVector))
	}
	return cmds
}

// Stdout is a successful result printing text
func Stdout(text string) runner.ExecutionResult {
	return runner.ExecutionResult{Stdout: text}
}

// Stderr is a result whose message comes from standard error
func Stderr(text string, exitCode int) runner.ExecutionResult {
	return runner.ExecutionResult{Stderr: text, ExitCode: exitCode}
}

// Missing is what ExecRunner returns for a tool that cannot be started
func Missing() runner.ExecutionResult {
	return runner.ExecutionResult{ExitCode: runner.ExitNotStarted}
}

// Verify interface compliance
var _ runner.Runner = (*MockRunner)(nil)
