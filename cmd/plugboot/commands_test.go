package plugboot

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/plugboot/pkg/errors"
	"github.com/arthur-debert/plugboot/pkg/filesystem"
	"github.com/arthur-debert/plugboot/pkg/paths"
	"github.com/arthur-debert/plugboot/pkg/runner"
	"github.com/arthur-debert/plugboot/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testRoot = "/work"
	testHome = "/home/user"
)

var (
	pipProbe = runner.CommandVector{"python", "-m", "pip", "--version"}
	gitProbe = runner.CommandVector{"git", "--version"}
)

type harness struct {
	t      *testing.T
	app    *app
	runner *testutil.MockRunner
	fs     filesystem.FS
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	r := testutil.NewMockRunner()
	fs := testutil.NewTestFS()
	return &harness{
		t:      t,
		app:    &app{runner: r, fs: fs, home: testHome},
		runner: r,
		fs:     fs,
	}
}

// execute runs the root command with the test root and plain output
func (h *harness) execute(args ...string) (string, error) {
	h.t.Helper()
	cmd := newRootCmd(h.app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--root", testRoot, "--format", "text"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_NoCommand(t *testing.T) {
	h := newHarness(t)

	_, err := h.execute()
	require.Error(t, err)
	assert.Equal(t, MsgNoCommand, err.Error())
}

func TestRootCmd_InvalidFormat(t *testing.T) {
	h := newHarness(t)

	_, err := h.execute("--format", "xml", "plan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format: xml")
}

func TestPlanCmd(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		h := newHarness(t)

		out, err := h.execute("plan")
		require.NoError(t, err)
		assert.Contains(t, out, " 1. directories")
		assert.Contains(t, out, "12. downloads")
		assert.Contains(t, out, "https://github.com/intel/openvino-ai-plugins-gimp.git")
		h.runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
	})

	t.Run("yaml", func(t *testing.T) {
		h := newHarness(t)

		out, err := h.execute("--format", "yaml", "plan")
		require.NoError(t, err)
		assert.Contains(t, out, "steps:")
		assert.Contains(t, out, "name: plugin-clone")
	})
}

func TestDirsCmd(t *testing.T) {
	h := newHarness(t)

	out, err := h.execute("dirs")
	require.NoError(t, err)

	assert.Contains(t, out, "[info] Created "+filepath.Join(testRoot, "openvino-ai"))
	assert.Contains(t, out, filepath.Join(testHome, "openvino-ai-plugins-gimp", "weights", "stable-diffusion-ov"))
	assert.True(t, filesystem.IsDir(h.fs, filepath.Join(testHome, "openvino-ai-plugins-gimp", "weights")))
	assert.True(t, filesystem.IsDir(h.fs, filepath.Join(testRoot, "tmp")))

	// second run creates nothing
	out, err = h.execute("dirs")
	require.NoError(t, err)
	assert.NotContains(t, out, "Created")
}

func TestInstallCmd_DryRun(t *testing.T) {
	h := newHarness(t)

	out, err := h.execute("install", "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, out, "[info] [dry-run] Install virtualenv into the system interpreter")
	assert.Contains(t, out, "planned")
	assert.Contains(t, out, MsgDryRunNotice)
	h.runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
	assert.False(t, filesystem.Exists(h.fs, filepath.Join(testRoot, "openvino-ai")))
}

func TestInstallCmd_MissingTool(t *testing.T) {
	h := newHarness(t)
	h.runner.OnCommand(pipProbe, testutil.Missing()).Once()

	_, err := h.execute("install")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrToolMissing))
	assert.True(t, errors.IsFatal(err))
	// directories come before the probe
	assert.True(t, filesystem.IsDir(h.fs, filepath.Join(testRoot, "openvino-ai")))
}

func TestCheckCmd(t *testing.T) {
	t.Run("all tools present", func(t *testing.T) {
		h := newHarness(t)
		h.runner.OnCommand(runner.CommandVector{"python", "--version"}, testutil.Stdout("Python 3.10.12")).Once()
		h.runner.OnCommand(pipProbe, testutil.Stdout("pip 23.3.1")).Once()
		h.runner.OnCommand(gitProbe, testutil.Stdout("git version 2.43.0")).Once()

		out, err := h.execute("check")
		require.NoError(t, err)
		assert.Contains(t, out, "interpreter  Python 3.10.12")
		assert.Contains(t, out, "pip          pip 23.3.1")
		assert.Contains(t, out, "git          git version 2.43.0")
		h.runner.AssertExpectations(t)
	})

	t.Run("git missing", func(t *testing.T) {
		h := newHarness(t)
		h.runner.OnCommand(runner.CommandVector{"python", "--version"}, testutil.Stdout("Python 3.10.12")).Once()
		h.runner.OnCommand(pipProbe, testutil.Stdout("pip 23.3.1")).Once()
		h.runner.OnCommand(gitProbe, testutil.Missing()).Once()

		_, err := h.execute("check")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrToolMissing))
	})
}

func TestPkgCmd(t *testing.T) {
	show := runner.CommandVector{"python", "-m", "pip", "show", "tqdm"}
	install := runner.CommandVector{"python", "-m", "pip", "install", "tqdm==4.64.0"}

	t.Run("install missing package", func(t *testing.T) {
		h := newHarness(t)
		h.runner.OnCommand(pipProbe, testutil.Stdout("pip 23.3.1")).Once()
		h.runner.OnCommand(show, testutil.Stderr("WARNING: Package(s) not found: tqdm", 1)).Once()
		h.runner.OnCommand(install, testutil.Stdout("Successfully installed tqdm-4.64.0")).Once()

		out, err := h.execute("pkg", "install", "tqdm==4.64.0")
		require.NoError(t, err)
		assert.Contains(t, out, "[info] tqdm==4.64.0 is installed")
		h.runner.AssertExpectations(t)
	})

	t.Run("failed install is fatal", func(t *testing.T) {
		h := newHarness(t)
		h.runner.OnCommand(pipProbe, testutil.Stdout("pip 23.3.1")).Once()
		h.runner.OnCommand(show, testutil.Stderr("WARNING: Package(s) not found: tqdm", 1)).Once()
		h.runner.OnCommand(install, testutil.Stderr("ERROR: No matching distribution found for tqdm==4.64.0", 1)).Once()

		out, err := h.execute("pkg", "install", "tqdm==4.64.0")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInstallFailed))
		assert.Contains(t, out, "[error] ERROR: No matching distribution found")
	})

	t.Run("show in the virtual environment", func(t *testing.T) {
		h := newHarness(t)
		venvPy := paths.VenvPython(filepath.Join(testRoot, "openvino-ai", "gimpenv3"))
		h.runner.OnCommand(runner.CommandVector{venvPy, "-m", "pip", "--version"}, testutil.Stdout("pip 23.3.1")).Once()
		h.runner.OnCommand(runner.CommandVector{venvPy, "-m", "pip", "show", "torch"}, testutil.Stdout("Name: torch")).Once()
		h.runner.OnCommand(runner.CommandVector{venvPy, "-m", "pip", "show", "scipy"},
			testutil.Stderr("WARNING: Package(s) not found: scipy", 1)).Once()

		out, err := h.execute("pkg", "show", "--venv", "torch", "scipy")
		require.NoError(t, err)
		assert.Contains(t, out, "[info] torch is installed")
		assert.Contains(t, out, "[warn] scipy is not installed")
		h.runner.AssertExpectations(t)
	})

	t.Run("remove absent package", func(t *testing.T) {
		h := newHarness(t)
		h.runner.OnCommand(pipProbe, testutil.Stdout("pip 23.3.1")).Once()
		h.runner.OnCommand(show, testutil.Stderr("WARNING: Package(s) not found: tqdm", 1)).Once()

		out, err := h.execute("pkg", "remove", "tqdm")
		require.NoError(t, err)
		assert.Contains(t, out, "[warn] tqdm is not installed")
		h.runner.AssertExpectations(t)
	})
}

func TestCloneCmd(t *testing.T) {
	const url = "https://example.com/repo.git"
	dest := filepath.Join(testRoot, "repo")
	clone := runner.CommandVector{"git", "clone", url, dest}

	t.Run("clone without done fails", func(t *testing.T) {
		h := newHarness(t)
		h.runner.OnCommand(gitProbe, testutil.Stdout("git version 2.43.0")).Once()
		h.runner.OnCommand(clone, testutil.Stderr("fatal: repository not found", 128)).Once()

		_, err := h.execute("clone", url, dest)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrCloneFailed))
		assert.Equal(t, "fatal: repository not found", errors.GetErrorDetails(err)["output"])
	})

	t.Run("if-absent skips populated destination", func(t *testing.T) {
		h := newHarness(t)
		testutil.WriteFiles(t, h.fs, map[string]string{filepath.Join(dest, "README.md"): "hi"})
		h.runner.OnCommand(gitProbe, testutil.Stdout("git version 2.43.0")).Once()

		out, err := h.execute("clone", "--if-absent", url, dest)
		require.NoError(t, err)
		assert.Contains(t, out, "already has content")
		h.runner.AssertNotCalled(t, "Run", mock.Anything, clone)
	})
}

func TestDownloadCmd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("payload of " + r.URL.Path))
	}))
	defer server.Close()

	h := newHarness(t)
	dir := "/downloads"
	testutil.WriteFiles(t, h.fs, map[string]string{filepath.Join(dir, "merges.txt"): "already here"})

	out, err := h.execute("download", "--dir", dir,
		server.URL+"/merges.txt",
		server.URL+"/vocab.json",
		server.URL+"/missing.json",
	)
	require.NoError(t, err)

	assert.Equal(t, "already here", testutil.ReadString(t, h.fs, filepath.Join(dir, "merges.txt")))
	assert.Equal(t, "payload of /vocab.json", testutil.ReadString(t, h.fs, filepath.Join(dir, "vocab.json")))
	assert.False(t, filesystem.Exists(h.fs, filepath.Join(dir, "missing.json")))

	assert.Contains(t, out, "merges.txt already exists, skipping")
	assert.Contains(t, out, "Download of "+server.URL+"/missing.json failed!")
	assert.Contains(t, out, "1 download(s) failed")
}

func TestGenConfigCmd(t *testing.T) {
	t.Run("commented defaults", func(t *testing.T) {
		h := newHarness(t)

		out, err := h.execute("genconfig", "--commented")
		require.NoError(t, err)
		assert.Contains(t, out, "[tools]")
		assert.Contains(t, out, `# interpreter = "python"`)
	})

	t.Run("effective configuration", func(t *testing.T) {
		h := newHarness(t)
		t.Setenv("PLUGBOOT_TOOLS_GIT", "/opt/git/bin/git")

		out, err := h.execute("genconfig")
		require.NoError(t, err)
		assert.Contains(t, out, "[tools]")
		assert.Contains(t, out, "/opt/git/bin/git")
	})
}

func TestVersionCmd(t *testing.T) {
	h := newHarness(t)

	out, err := h.execute("version", "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "plugboot dev")
	assert.Contains(t, out, "development build")
}

func TestCompletionCmd(t *testing.T) {
	h := newHarness(t)

	out, err := h.execute("completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "plugboot")

	_, err = h.execute("completion", "tcsh")
	require.Error(t, err)
}

func TestHelpTopics(t *testing.T) {
	h := newHarness(t)

	out, err := h.execute("help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "configuration")
	assert.Contains(t, out, "--reinstall")

	out, err = h.execute("help", "layout")
	require.NoError(t, err)
	assert.Contains(t, out, "# Directory layout")

	out, err = h.execute("help", "dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "PLUGBOOT_INSTALL_DRY_RUN")
}
