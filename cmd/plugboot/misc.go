package plugboot

import (
	"fmt"
	"io"

	"github.com/arthur-debert/plugboot/internal/version"
	"github.com/arthur-debert/plugboot/pkg/config"
	"github.com/spf13/cobra"
)

func newGenConfigCmd(a *app) *cobra.Command {
	var commented bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if commented {
				_, err := io.WriteString(out, config.GenerateConfigContent())
				return err
			}

			cfg, err := a.loadConfig(nil)
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&commented, "commented", false, MsgFlagCommented)
	return cmd
}

func newVersionCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Long:    MsgVersionLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgVersionFormat, version.Version, version.Commit, version.Date)
			if !check {
				return nil
			}
			if version.IsDev() {
				_, _ = fmt.Fprint(out, MsgVersionDev)
				return nil
			}

			update, err := version.Check()
			if err != nil {
				return fmt.Errorf("release check failed: %w", err)
			}
			if update.Outdated {
				_, _ = fmt.Fprintf(out, MsgVersionOutdated, update.Latest)
				return nil
			}
			_, _ = fmt.Fprintf(out, MsgVersionLatest, update.Latest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, MsgFlagCheck)
	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenerateCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

// GenerateCompletion writes the completion script for shell
func GenerateCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf(MsgErrShellFormat, shell)
	}
}
