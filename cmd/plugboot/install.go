package plugboot

import (
	"fmt"

	"github.com/arthur-debert/plugboot/pkg/bootstrap"
	"github.com/arthur-debert/plugboot/pkg/operations"
	"github.com/arthur-debert/plugboot/pkg/paths"
	"github.com/arthur-debert/plugboot/pkg/toolcmd"
	"github.com/arthur-debert/plugboot/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newInstallCmd(a *app) *cobra.Command {
	var dryRun, reinstall bool

	cmd := &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if cmd.Flags().Changed("dry-run") {
				overrides["install.dry_run"] = dryRun
			}
			if cmd.Flags().Changed("reinstall") {
				overrides["install.reinstall"] = reinstall
			}

			e, err := a.setup(cmd, overrides)
			if err != nil {
				return err
			}

			installer, err := bootstrap.New(e.cfg, e.layout,
				bootstrap.Options{DryRun: e.cfg.Install.DryRun, Reinstall: e.cfg.Install.Reinstall},
				bootstrap.WithRunner(a.processRunner(e.cfg)),
				bootstrap.WithFS(a.fileSystem()),
				bootstrap.WithReporter(e.reporter),
			)
			if err != nil {
				return err
			}

			rep, runErr := installer.Run(cmd.Context())
			if rep != nil {
				if err := ui.RenderReport(cmd.OutOrStdout(), rep, e.format); err != nil {
					log.Warn().Err(err).Msg("Failed to render report")
				}
			}
			if runErr != nil {
				return runErr
			}

			switch {
			case rep.DryRun:
				e.reporter.Info(MsgDryRunNotice)
			case !rep.OK():
				e.reporter.Warn(MsgInstallPartial)
			default:
				e.reporter.Info(MsgInstallComplete)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&reinstall, "reinstall", false, MsgFlagReinstall)
	return cmd
}

func newPlanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "plan",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.setup(cmd, nil)
			if err != nil {
				return err
			}
			installer, err := bootstrap.New(e.cfg, e.layout, bootstrap.Options{})
			if err != nil {
				return err
			}
			return ui.RenderPlan(cmd.OutOrStdout(), installer.Plan(), e.format)
		},
	}
}

func newDirsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "dirs",
		Short:   MsgDirsShort,
		Long:    MsgDirsLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.setup(cmd, nil)
			if err != nil {
				return err
			}
			created, err := paths.NewRegistry(a.fileSystem()).EnsureAll(e.layout)
			if err != nil {
				return err
			}
			for _, dir := range created {
				e.reporter.Info("Created " + dir)
			}
			return ui.RenderLayout(cmd.OutOrStdout(), e.layout, e.format)
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "check",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.setup(cmd, nil)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			r := a.processRunner(e.cfg)
			pip := toolcmd.NewPip(e.cfg.Tools.Interpreter)

			result, err := r.Run(ctx, pip.InterpreterVersion())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgToolVersion, "interpreter", result.Message())

			pkgOp, err := operations.NewPackageOperation(ctx, r, pip, operations.WithReporter(e.reporter))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, MsgToolVersion, "pip", pkgOp.Version())

			gitOp, err := operations.NewSourceControlOperation(ctx, r, toolcmd.NewGit(e.cfg.Tools.Git),
				operations.WithReporter(e.reporter))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, MsgToolVersion, "git", gitOp.Version())
			return nil
		},
	}
}
