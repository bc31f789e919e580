package plugboot

import (
	"fmt"

	"github.com/arthur-debert/plugboot/pkg/bootstrap"
	"github.com/arthur-debert/plugboot/pkg/download"
	"github.com/arthur-debert/plugboot/pkg/errors"
	"github.com/arthur-debert/plugboot/pkg/operations"
	"github.com/arthur-debert/plugboot/pkg/paths"
	"github.com/arthur-debert/plugboot/pkg/toolcmd"
	"github.com/spf13/cobra"
)

func newPkgCmd(a *app) *cobra.Command {
	var venv bool

	cmd := &cobra.Command{
		Use:     "pkg",
		Short:   MsgPkgShort,
		Long:    MsgPkgLong,
		Example: MsgPkgExample,
		GroupID: "tools",
	}
	cmd.PersistentFlags().BoolVar(&venv, "venv", false, MsgFlagVenv)

	// open builds the package operation for the selected interpreter
	open := func(cmd *cobra.Command) (*operations.PackageOperation, *env, error) {
		e, err := a.setup(cmd, nil)
		if err != nil {
			return nil, nil, err
		}
		pip := toolcmd.NewPip(e.cfg.Tools.Interpreter)
		if venv {
			pip = pip.WithInterpreter(paths.VenvPython(e.layout.VenvDir))
		}
		op, err := operations.NewPackageOperation(cmd.Context(), a.processRunner(e.cfg), pip,
			operations.WithInstallPhrases(e.cfg.Phrases.InstallSet()),
			operations.WithReporter(e.reporter),
		)
		if err != nil {
			return nil, nil, err
		}
		return op, e, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show NAME...",
		Short: MsgPkgShowShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, e, err := open(cmd)
			if err != nil {
				return err
			}
			for _, name := range args {
				exists, err := op.CheckExists(cmd.Context(), name)
				if err != nil {
					return err
				}
				if exists {
					e.reporter.Info(fmt.Sprintf(MsgPackageInstalled, name))
				} else {
					e.reporter.Warn(fmt.Sprintf(MsgPackageMissing, name))
				}
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "install NAME...",
		Short: MsgPkgInstallShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, e, err := open(cmd)
			if err != nil {
				return err
			}
			for _, name := range args {
				ok, err := op.CheckInstall(cmd.Context(), name)
				if err != nil {
					return err
				}
				if !ok {
					return errors.Newf(errors.ErrInstallFailed, MsgErrInstallPkg, name).
						WithDetail("package", name)
				}
				e.reporter.Info(fmt.Sprintf(MsgPackageInstalled, name))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove NAME...",
		Short: MsgPkgRemoveShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, e, err := open(cmd)
			if err != nil {
				return err
			}
			for _, name := range args {
				removed, err := op.Remove(cmd.Context(), name)
				if err != nil {
					return err
				}
				if removed {
					e.reporter.Info(fmt.Sprintf(MsgPackageRemoved, name))
				} else {
					e.reporter.Warn(fmt.Sprintf(MsgPackageMissing, name))
				}
			}
			return nil
		},
	})

	return cmd
}

func newCloneCmd(a *app) *cobra.Command {
	var ifAbsent bool

	cmd := &cobra.Command{
		Use:     "clone URL [DEST]",
		Short:   MsgCloneShort,
		Long:    MsgCloneLong,
		GroupID: "tools",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.setup(cmd, nil)
			if err != nil {
				return err
			}
			url, dest := args[0], ""
			if len(args) == 2 {
				dest = paths.ExpandHome(args[1])
			}

			op, err := operations.NewSourceControlOperation(cmd.Context(), a.processRunner(e.cfg), toolcmd.NewGit(e.cfg.Tools.Git),
				operations.WithClonePhrases(e.cfg.Phrases.CloneSet()),
				operations.WithReporter(e.reporter),
				operations.WithFS(a.fileSystem()),
			)
			if err != nil {
				return err
			}

			if !ifAbsent {
				return op.Clone(cmd.Context(), url, dest)
			}
			cloned, err := op.CloneIfAbsent(cmd.Context(), url, dest)
			if err != nil {
				return err
			}
			if !cloned {
				e.reporter.Info(fmt.Sprintf(MsgCloneSkipped, dest))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&ifAbsent, "if-absent", false, MsgFlagIfAbsent)
	return cmd
}

func newDownloadCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "download URL...",
		Short:   MsgDownloadShort,
		Long:    MsgDownloadLong,
		Example: MsgDownloadExample,
		GroupID: "tools",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.setup(cmd, nil)
			if err != nil {
				return err
			}
			target := e.layout.UserWeightsModelDir
			if dir != "" {
				target = paths.ExpandHome(dir)
			}

			fs := a.fileSystem()
			if _, err := paths.NewRegistry(fs).EnsureDirectory(target); err != nil {
				return err
			}

			d, err := bootstrap.NewDownloader(e.cfg, fs, e.reporter)
			if err != nil {
				return err
			}

			failed := 0
			for _, url := range args {
				missing, err := download.Missing(fs, url, target)
				if err != nil {
					return err
				}
				if !missing {
					name, _ := download.FileName(url)
					e.reporter.Info(fmt.Sprintf(MsgDownloadSkipped, name))
					continue
				}

				result, err := d.Download(cmd.Context(), url, target)
				if err != nil {
					return err
				}
				if !result.OK {
					failed++
					continue
				}
				e.reporter.Info(fmt.Sprintf(MsgDownloadSaved, result.Path, result.Bytes))
			}

			if failed > 0 {
				e.reporter.Warn(fmt.Sprintf(MsgDownloadsFailed, failed))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", MsgFlagDir)
	return cmd
}
