package operations_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/plugboot/pkg/errors"
	"github.com/arthur-debert/plugboot/pkg/operations"
	"github.com/arthur-debert/plugboot/pkg/report"
	"github.com/arthur-debert/plugboot/pkg/runner"
	"github.com/arthur-debert/plugboot/pkg/testutil"
	"github.com/arthur-debert/plugboot/pkg/toolcmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pluginURL  = "https://github.com/intel/openvino-ai-plugins-gimp.git"
	pluginDest = "/work/openvino-ai"
)

var cloneCmd = runner.CommandVector{"git", "clone", pluginURL, pluginDest}

func newGitOp(t *testing.T, m *testutil.MockRunner, rec *report.Recorder, opts ...operations.Option) *operations.SourceControlOperation {
	t.Helper()
	git := toolcmd.NewGit("")
	m.OnCommand(git.ProbeVersion(), testutil.Stdout("git version 2.43.0")).Once()

	opts = append(opts, operations.WithReporter(rec))
	op, err := operations.NewSourceControlOperation(context.Background(), m, git, opts...)
	require.NoError(t, err)
	return op
}

func TestNewSourceControlOperation_ToolMissing(t *testing.T) {
	m := testutil.NewMockRunner()
	m.OnCommand(runner.CommandVector{"git", "--version"}, testutil.Missing()).Once()

	_, err := operations.NewSourceControlOperation(context.Background(), m, toolcmd.NewGit("git"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrToolMissing))
	assert.Contains(t, err.Error(), operations.MsgGitMissing)
}

func TestClone_Success(t *testing.T) {
	m := testutil.NewMockRunner()
	rec := report.NewRecorder()
	op := newGitOp(t, m, rec)
	assert.Equal(t, "git version 2.43.0", op.Version())

	m.OnCommand(cloneCmd, testutil.Stderr("Cloning into '/work/openvino-ai'...\nResolving deltas: 100% (40/40), done.", 0)).Once()

	require.NoError(t, op.Clone(context.Background(), pluginURL, pluginDest))
	assert.Equal(t, []string{"Cloning " + pluginURL + " to " + pluginDest}, rec.Messages(report.LevelInfo))
	m.AssertExpectations(t)
}

func TestClone_WithoutDoneIsFatal(t *testing.T) {
	m := testutil.NewMockRunner()
	op := newGitOp(t, m, report.NewRecorder())

	output := "fatal: destination path '/work/openvino-ai' already exists and is not an empty directory."
	m.OnCommand(cloneCmd, testutil.Stderr(output, 128)).Once()

	err := op.Clone(context.Background(), pluginURL, pluginDest)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCloneFailed))
	assert.True(t, errors.IsFatal(err))
	assert.Contains(t, err.Error(), output)
	assert.Equal(t, output, errors.GetErrorDetails(err)["output"])
}

func TestClone_EmptyURL(t *testing.T) {
	m := testutil.NewMockRunner()
	op := newGitOp(t, m, report.NewRecorder())

	err := op.Clone(context.Background(), "", pluginDest)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestClone_NoDestination(t *testing.T) {
	m := testutil.NewMockRunner()
	op := newGitOp(t, m, report.NewRecorder())
	m.OnCommand(runner.CommandVector{"git", "clone", pluginURL}, testutil.Stderr("done.", 0)).Once()

	require.NoError(t, op.Clone(context.Background(), pluginURL, ""))
	m.AssertExpectations(t)
}

func TestCloneIfAbsent(t *testing.T) {
	t.Run("populated destination is skipped", func(t *testing.T) {
		fs := testutil.NewTestFS()
		testutil.WriteFiles(t, fs, map[string]string{pluginDest + "/setup.py": ""})

		m := testutil.NewMockRunner()
		op := newGitOp(t, m, report.NewRecorder(), operations.WithFS(fs))

		cloned, err := op.CloneIfAbsent(context.Background(), pluginURL, pluginDest)
		require.NoError(t, err)
		assert.False(t, cloned)
		assert.Len(t, m.Commands(), 1)
	})

	t.Run("empty destination is cloned", func(t *testing.T) {
		fs := testutil.NewTestFS()
		require.NoError(t, fs.MkdirAll(pluginDest, 0755))

		m := testutil.NewMockRunner()
		op := newGitOp(t, m, report.NewRecorder(), operations.WithFS(fs))
		m.OnCommand(cloneCmd, testutil.Stderr("done.", 0)).Once()

		cloned, err := op.CloneIfAbsent(context.Background(), pluginURL, pluginDest)
		require.NoError(t, err)
		assert.True(t, cloned)
		m.AssertExpectations(t)
	})

	t.Run("missing destination is cloned", func(t *testing.T) {
		m := testutil.NewMockRunner()
		op := newGitOp(t, m, report.NewRecorder(), operations.WithFS(testutil.NewTestFS()))
		m.OnCommand(cloneCmd, testutil.Stderr("done.", 0)).Once()

		cloned, err := op.CloneIfAbsent(context.Background(), pluginURL, pluginDest)
		require.NoError(t, err)
		assert.True(t, cloned)
	})

	t.Run("failed clone is returned", func(t *testing.T) {
		m := testutil.NewMockRunner()
		op := newGitOp(t, m, report.NewRecorder(), operations.WithFS(testutil.NewTestFS()))
		m.OnCommand(cloneCmd, testutil.Stderr("fatal: repository not found", 128)).Once()

		cloned, err := op.CloneIfAbsent(context.Background(), pluginURL, pluginDest)
		assert.False(t, cloned)
		assert.True(t, errors.IsErrorCode(err, errors.ErrCloneFailed))
	})
}
