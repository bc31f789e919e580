package plugboot

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort        = "Bootstrap installer for the OpenVINO GIMP plugin"
	MsgInstallShort     = "Provision the plugin, its virtual environment and model weights"
	MsgPlanShort        = "Show the install steps without running them"
	MsgDirsShort        = "Create the working directories and print the layout"
	MsgCheckShort       = "Check that the interpreter, pip and git are available"
	MsgPkgShort         = "Show, install or remove python packages"
	MsgPkgShowShort     = "Report whether packages are installed"
	MsgPkgInstallShort  = "Install packages that are not installed yet"
	MsgPkgRemoveShort   = "Uninstall packages that are installed"
	MsgCloneShort       = "Clone a repository"
	MsgDownloadShort    = "Download files that are not on disk yet"
	MsgGenConfigShort   = "Print the configuration as TOML"
	MsgVersionShort     = "Print version information"
	MsgCompletionShort  = "Generate shell completion script"
	MsgCloneLong        = "Clone URL into DEST, or into a directory named after the repository when DEST is omitted.\n\nThe clone succeeds only when git reports \"done\"."
	MsgGenConfigLong    = "Print the effective configuration, merged from every source, as TOML.\n\nWith --commented, print the built-in defaults with every value commented out instead."
	MsgDownloadLong     = "Download each URL into the target directory. Files already present are skipped; failed downloads are reported without stopping the others."
	MsgPlanLong         = "Print the ordered install steps for the current configuration."
	MsgCheckLong        = "Probe the system interpreter, its package manager and git the way install does, and print their versions."
	MsgDirsLong         = "Create every working directory that does not exist yet and print the resolved layout."
	MsgVersionLong      = "Print version information. With --check, also ask GitHub for the newest release."
	MsgPkgLong          = "Run idempotent package operations with the system interpreter, or with the one inside the virtual environment when --venv is given."
	MsgNoCommand        = "no command specified"
	MsgPackageInstalled = "%s is installed"
	MsgPackageMissing   = "%s is not installed"
	MsgPackageRemoved   = "Removed %s"
	MsgCloneSkipped     = "%s already has content, skipping clone"
	MsgDownloadSkipped  = "%s already exists, skipping"
	MsgDownloadSaved    = "Saved %s (%d bytes)"
	MsgDownloadsFailed  = "%d download(s) failed, run the command again to retry"
	MsgInstallComplete  = "Installation complete"
	MsgInstallPartial   = "Installation complete, but some downloads failed: run install again to retry them"
	MsgDryRunNotice     = "DRY RUN MODE - No changes were made"
	MsgVersionFormat    = "plugboot %s (commit %s, built %s)\n"
	MsgVersionLatest    = "Latest release: %s\n"
	MsgVersionOutdated  = "A newer version is available: %s\n"
	MsgVersionDev       = "development build, skipping release check\n"
	MsgToolVersion      = "%-12s %s\n"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot       = "Working root (default: PLUGBOOT_ROOT or the current directory)"
	MsgFlagConfig     = "User configuration file (default: $XDG_CONFIG_HOME/plugboot/config.toml)"
	MsgFlagNoUser     = "Ignore the user configuration file"
	MsgFlagFormat     = "Output format: auto, term, text or yaml"
	MsgFlagDryRun     = "Preview the steps without executing them"
	MsgFlagReinstall  = "Recreate the virtual environment even if it exists"
	MsgFlagVenv       = "Use the interpreter inside the virtual environment"
	MsgFlagDir        = "Target directory (default: the model weights directory)"
	MsgFlagIfAbsent   = "Skip the clone when DEST already has content"
	MsgFlagCommented  = "Print the defaults with every value commented out"
	MsgFlagCheck      = "Check GitHub for a newer release"
	MsgErrInstallPkg  = "could not install %s package"
	MsgErrLoadConfig  = "failed to load configuration: %w"
	MsgErrFormat      = "invalid --format: %w"
	MsgErrShellFormat = "unsupported shell %q"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/pkg-example.txt
	msgPkgExampleRaw string
	MsgPkgExample    = strings.TrimRight(msgPkgExampleRaw, "\n")

	//go:embed msgs/download-example.txt
	msgDownloadExampleRaw string
	MsgDownloadExample    = strings.TrimRight(msgDownloadExampleRaw, "\n")

	//go:embed msgs/genconfig-example.txt
	msgGenConfigExampleRaw string
	MsgGenConfigExample    = strings.TrimRight(msgGenConfigExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
