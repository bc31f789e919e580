package operations_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/plugboot/pkg/errors"
	"github.com/arthur-debert/plugboot/pkg/operations"
	"github.com/arthur-debert/plugboot/pkg/outcome"
	"github.com/arthur-debert/plugboot/pkg/report"
	"github.com/arthur-debert/plugboot/pkg/runner"
	"github.com/arthur-debert/plugboot/pkg/testutil"
	"github.com/arthur-debert/plugboot/pkg/toolcmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pipVersion = "pip 23.3.1 from /usr/lib/python3/dist-packages/pip (python 3.11)"

func newPackageOp(t *testing.T, m *testutil.MockRunner, rec *report.Recorder) *operations.PackageOperation {
	t.Helper()
	pip := toolcmd.NewPip("python")
	m.OnCommand(pip.ProbeVersion(), testutil.Stdout(pipVersion)).Once()

	op, err := operations.NewPackageOperation(context.Background(), m, pip, operations.WithReporter(rec))
	require.NoError(t, err)
	return op
}

func TestNewPackageOperation_ToolMissing(t *testing.T) {
	m := testutil.NewMockRunner()
	pip := toolcmd.NewPip("python")
	m.OnCommand(pip.ProbeVersion(), testutil.Missing()).Once()

	op, err := operations.NewPackageOperation(context.Background(), m, pip)
	require.Error(t, err)
	assert.Nil(t, op)
	assert.True(t, errors.IsErrorCode(err, errors.ErrToolMissing))
	assert.True(t, errors.IsFatal(err))
	assert.Contains(t, err.Error(), operations.MsgPipMissing)
	m.AssertExpectations(t)
}

func TestNewPackageOperation_ProbeOutputOnStderrCounts(t *testing.T) {
	m := testutil.NewMockRunner()
	pip := toolcmd.NewPip("python")
	m.OnCommand(pip.ProbeVersion(), testutil.Stderr("WARNING: old pip "+pipVersion, 0)).Once()

	op, err := operations.NewPackageOperation(context.Background(), m, pip)
	require.NoError(t, err)
	assert.Contains(t, op.Version(), "pip 23.3.1")
	assert.Equal(t, "python", op.Pip().Interpreter())
}

func TestNewPackageOperation_RunnerError(t *testing.T) {
	m := testutil.NewMockRunner()
	pip := toolcmd.NewPip("python")
	m.OnCommandError(pip.ProbeVersion(), errors.New(errors.ErrInvalidCommand, "bad"))

	_, err := operations.NewPackageOperation(context.Background(), m, pip)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidCommand))
}

func TestCheckExists(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   bool
	}{
		{"present", "Name: tqdm\nVersion: 4.64.0", true},
		{"absent", "WARNING: Package(s) not found: tqdm", false},
		{"unexpected output counts as present", "something odd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testutil.NewMockRunner()
			op := newPackageOp(t, m, report.NewRecorder())
			m.OnCommand(runner.CommandVector{"python", "-m", "pip", "show", "tqdm"}, testutil.Stdout(tt.output)).Once()

			got, err := op.CheckExists(context.Background(), "tqdm")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			m.AssertExpectations(t)
		})
	}
}

func TestCheckExists_StripsPin(t *testing.T) {
	m := testutil.NewMockRunner()
	op := newPackageOp(t, m, report.NewRecorder())
	m.OnCommand(runner.CommandVector{"python", "-m", "pip", "show", "foo"}, testutil.Stdout("Name: foo")).Once()

	got, err := op.CheckExists(context.Background(), "foo==1.2.3")
	require.NoError(t, err)
	assert.True(t, got)
	m.AssertExpectations(t)
}

func TestCheckExists_EmptyName(t *testing.T) {
	m := testutil.NewMockRunner()
	op := newPackageOp(t, m, report.NewRecorder())

	_, err := op.CheckExists(context.Background(), "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestCheckInstall_AlreadyInstalledRunsNoInstall(t *testing.T) {
	m := testutil.NewMockRunner()
	op := newPackageOp(t, m, report.NewRecorder())
	m.OnCommand(runner.CommandVector{"python", "-m", "pip", "show", "virtualenv"}, testutil.Stdout("Name: virtualenv")).Twice()

	for i := 0; i < 2; i++ {
		ok, err := op.CheckInstall(context.Background(), "virtualenv")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	for _, cmd := range m.Commands() {
		assert.NotContains(t, []string(cmd), "install")
	}
	m.AssertExpectations(t)
}

func TestCheckInstall_NotFoundThenInstalled(t *testing.T) {
	m := testutil.NewMockRunner()
	rec := report.NewRecorder()
	op := newPackageOp(t, m, rec)

	m.OnCommand(runner.CommandVector{"python", "-m", "pip", "show", "tqdm"},
		testutil.Stderr("WARNING: Package(s) not found: tqdm", 1)).Once()
	m.OnCommand(runner.CommandVector{"python", "-m", "pip", "install", "tqdm==4.64.0"},
		testutil.Stdout("Collecting tqdm==4.64.0\nSuccessfully installed tqdm-4.64.0")).Once()

	ok, err := op.CheckInstall(context.Background(), "tqdm==4.64.0")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, rec.Messages(report.LevelError))

	assert.Equal(t, []runner.CommandVector{
		{"python", "-m", "pip", "--version"},
		{"python", "-m", "pip", "show", "tqdm"},
		{"python", "-m", "pip", "install", "tqdm==4.64.0"},
	}, m.Commands())
	m.AssertExpectations(t)
}

func TestCheckInstall_FailureIsReported(t *testing.T) {
	m := testutil.NewMockRunner()
	rec := report.NewRecorder()
	op := newPackageOp(t, m, rec)

	failure := "ERROR: No matching distribution found for nosuchpkg"
	m.OnCommand(runner.CommandVector{"python", "-m", "pip", "show", "nosuchpkg"},
		testutil.Stderr("WARNING: Package(s) not found: nosuchpkg", 1)).Once()
	m.OnCommand(runner.CommandVector{"python", "-m", "pip", "install", "nosuchpkg"},
		testutil.Stderr(failure, 1)).Once()

	ok, err := op.CheckInstall(context.Background(), "nosuchpkg")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{failure}, rec.Messages(report.LevelError))
}

func TestCheckInstall_StderrWarningHidesStdoutSuccess(t *testing.T) {
	m := testutil.NewMockRunner()
	rec := report.NewRecorder()
	op := newPackageOp(t, m, rec)

	m.OnCommand(runner.CommandVector{"python", "-m", "pip", "show", "ftfy"},
		testutil.Stdout("WARNING: Package(s) not found: ftfy")).Once()
	m.OnCommand(runner.CommandVector{"python", "-m", "pip", "install", "ftfy"},
		runner.ExecutionResult{Stdout: "Successfully installed ftfy", Stderr: "WARNING: You are using pip version 20"}).Once()

	ok, err := op.CheckInstall(context.Background(), "ftfy")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, rec.Messages(report.LevelError), 1)
}

func TestCheckInstall_CustomPhrases(t *testing.T) {
	m := testutil.NewMockRunner()
	pip := toolcmd.NewPip("/venv/bin/python")
	m.OnCommand(pip.ProbeVersion(), testutil.Stdout(pipVersion)).Once()

	op, err := operations.NewPackageOperation(context.Background(), m, pip,
		operations.WithInstallPhrases(outcome.NewPhraseSet("Installed")))
	require.NoError(t, err)

	m.OnCommand(runner.CommandVector{"/venv/bin/python", "-m", "pip", "show", "x"}, testutil.Stdout("not found")).Once()
	m.OnCommand(runner.CommandVector{"/venv/bin/python", "-m", "pip", "install", "x"}, testutil.Stdout("Installed x")).Once()

	ok, err := op.CheckInstall(context.Background(), "x")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRemove(t *testing.T) {
	t.Run("absent package runs nothing", func(t *testing.T) {
		m := testutil.NewMockRunner()
		op := newPackageOp(t, m, report.NewRecorder())
		m.OnCommand(runner.CommandVector{"python", "-m", "pip", "show", "tqdm"}, testutil.Stdout("WARNING: Package(s) not found: tqdm")).Once()

		ok, err := op.Remove(context.Background(), "tqdm")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Len(t, m.Commands(), 2)
	})

	t.Run("present package is uninstalled", func(t *testing.T) {
		m := testutil.NewMockRunner()
		op := newPackageOp(t, m, report.NewRecorder())
		m.OnCommand(runner.CommandVector{"python", "-m", "pip", "show", "tqdm"}, testutil.Stdout("Name: tqdm")).Once()
		m.OnCommand(runner.CommandVector{"python", "-m", "pip", "uninstall", "-y", "tqdm==4.64.0"}, testutil.Stdout("Successfully uninstalled tqdm-4.64.0")).Once()

		ok, err := op.Remove(context.Background(), "tqdm==4.64.0")
		require.NoError(t, err)
		assert.True(t, ok)
		m.AssertExpectations(t)
	})
}
