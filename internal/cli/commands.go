// Package cli builds the locfold command tree.
package cli

import (
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/arthur-debert/locfold/internal/version"
	"github.com/arthur-debert/locfold/pkg/cobrax/topics"
	"github.com/arthur-debert/locfold/pkg/config"
	"github.com/arthur-debert/locfold/pkg/consolidate"
	"github.com/arthur-debert/locfold/pkg/logging"
	"github.com/arthur-debert/locfold/pkg/normalize"
	"github.com/arthur-debert/locfold/pkg/scanner"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "locfold",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVarP(&opts.configFile, "config", "c", "", MsgFlagConfig)
	pf.StringVarP(&opts.format, "format", "f", "", MsgFlagFormat)
	pf.BoolVarP(&opts.dryRun, "dry-run", "n", false, MsgFlagDryRun)
	pf.BoolVarP(&opts.yes, "yes", "y", false, MsgFlagYes)
	pf.StringSliceVarP(&opts.exceptions, "exception", "e", nil, MsgFlagException)
	pf.StringVar(&opts.prefix, "prefix", "", MsgFlagPrefix)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newFoldCmd(opts))
	rootCmd.AddCommand(newPlanCmd(opts))
	rootCmd.AddCommand(newNormalizeCmd(opts))
	rootCmd.AddCommand(newScanCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if err := initTopics(rootCmd); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

func initTopics(rootCmd *cobra.Command) error {
	source, err := fs.Sub(helpTopics, "topics")
	if err != nil {
		return fmt.Errorf(MsgErrTopics, err)
	}
	_, err = topics.Initialize(rootCmd, source, topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.RendererFor(rootCmd.OutOrStdout()),
	})
	if err != nil {
		return fmt.Errorf(MsgErrTopics, err)
	}
	return nil
}

func newFoldCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "fold [root]",
		Short:   MsgFoldShort,
		Long:    MsgFoldLong,
		Example: MsgFoldExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runFold(cmd, args, opts.dryRun)
		},
	}
}

func newPlanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "plan [root]",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runFold(cmd, args, true)
		},
	}
}

func (o *options) runFold(cmd *cobra.Command, args []string, dryRun bool) error {
	a, err := o.setup(cmd, args)
	if err != nil {
		return err
	}

	logger := logging.GetLogger("cmd.fold")
	logger.Info().
		Str("root", a.root).
		Bool("dry_run", dryRun).
		Strs("exceptions", a.cfg.ExceptionSet().Names()).
		Msg("Folding resource root")

	engine := consolidate.New(a.fs, a.grammar, a.cfg.ExceptionSet())

	if !dryRun && !o.yes && isInteractive(cmd.InOrStdin()) {
		ok, err := confirmFold(cmd, engine, a.root)
		if err != nil {
			return err
		}
		if !ok {
			logger.Info().Msg("Fold declined")
			return a.renderer.RenderMessage(MsgAborted)
		}
	}

	rep, err := engine.Consolidate(a.root, consolidate.Options{DryRun: dryRun})
	if err != nil {
		return err
	}
	if err := a.renderer.RenderResult(rep); err != nil {
		return err
	}
	if rep.HasErrors() {
		return reportFailed(cmd.Name(), len(rep.Errors()))
	}
	return nil
}

func newNormalizeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "normalize [root]",
		Short:   MsgNormalizeShort,
		Long:    MsgNormalizeLong,
		Example: MsgNormalizeExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd, args)
			if err != nil {
				return err
			}

			log.Info().Str("root", a.root).Bool("dry_run", opts.dryRun).Msg("Normalizing resource root")

			n := normalize.New(a.fs, a.grammar)
			rep, err := n.Normalize(a.root, a.cfg.NormalizeOptions(opts.dryRun))
			if err != nil {
				return err
			}
			if err := a.renderer.RenderResult(rep); err != nil {
				return err
			}
			if rep.HasErrors() {
				return reportFailed(cmd.Name(), len(rep.Errors()))
			}
			return nil
		},
	}
}

func newScanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "scan [root]",
		Short:   MsgScanShort,
		Long:    MsgScanLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd, args)
			if err != nil {
				return err
			}

			result, err := scanner.New(a.fs, a.grammar).Scan(a.root)
			if err != nil {
				return err
			}
			return a.renderer.RenderResult(result)
		},
	}
}

func newConfigCmd(opts *options) *cobra.Command {
	var generate bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if generate {
				_, err := fmt.Fprint(out, config.GenerateConfigContent())
				return err
			}

			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}

			if len(cfg.Sources) > 0 {
				for _, source := range cfg.Sources {
					fmt.Fprintf(out, MsgConfigSources, source)
				}
			} else {
				fmt.Fprint(out, MsgConfigBuiltins)
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&generate, "generate", false, MsgFlagGenerate)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Info(cmd.Root().Name()))
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             CompletionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return WriteCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

// CompletionShells are the shells completion scripts can be generated for
var CompletionShells = []string{"bash", "zsh", "fish", "powershell"}

// WriteCompletion writes the completion script of rootCmd for shell
func WriteCompletion(rootCmd *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return rootCmd.GenBashCompletionV2(w, true)
	case "zsh":
		return rootCmd.GenZshCompletion(w)
	case "fish":
		return rootCmd.GenFishCompletion(w, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unknown shell %q (supported: %s)", shell, strings.Join(CompletionShells, ", "))
	}
}
