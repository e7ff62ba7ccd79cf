package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/locfold/pkg/config"
	"github.com/arthur-debert/locfold/pkg/consolidate"
	"github.com/arthur-debert/locfold/pkg/errors"
	"github.com/arthur-debert/locfold/pkg/filesystem"
	"github.com/arthur-debert/locfold/pkg/locale"
	"github.com/arthur-debert/locfold/pkg/paths"
	"github.com/arthur-debert/locfold/pkg/report"
	"github.com/arthur-debert/locfold/pkg/types"
	"github.com/arthur-debert/locfold/pkg/ui"
	"github.com/arthur-debert/locfold/pkg/ui/confirmations"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// exitReportErrors is the exit status of a run that completed with errors
// recorded in its report.
const exitReportErrors = 2

// options holds the global flags
type options struct {
	verbosity  int
	configFile string
	format     string
	dryRun     bool
	yes        bool
	exceptions []string
	prefix     string
}

// app is what a command needs once flags and configuration are resolved
type app struct {
	cfg      *config.Config
	grammar  *locale.Grammar
	root     string
	fs       types.FS
	renderer ui.Renderer
}

// exitError ends the process with code without printing anything more, the
// report having said it all.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

// ExitCode returns the exit status carried by err, if any
func ExitCode(err error) (int, bool) {
	var exit *exitError
	if stderrors.As(err, &exit) {
		return exit.code, true
	}
	return 0, false
}

func reportFailed(command string, n int) error {
	return &exitError{
		code: exitReportErrors,
		msg:  fmt.Sprintf(MsgErrReportFails, command, n),
	}
}

// isInteractive reports whether in is a terminal a prompt can be answered on
var isInteractive = func(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// loadConfig layers the flags that were set over the file and environment
// configuration
func (o *options) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	overrides := make(map[string]interface{})
	flags := cmd.Flags()
	if flags.Changed("exception") {
		overrides["merge.exceptions"] = o.exceptions
	}
	if flags.Changed("prefix") {
		overrides["locale.prefix"] = o.prefix
	}
	if flags.Changed("format") {
		overrides["output.format"] = o.format
	}

	cfg, err := config.Load(config.LoadOptions{
		File:      o.configFile,
		Overrides: overrides,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

// setup resolves configuration, the resource root and the renderer. A root
// given on the command line wins over resource_root.
func (o *options) setup(cmd *cobra.Command, args []string) (*app, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	root, configured := cfg.ResourceRoot, true
	if len(args) > 0 {
		root, configured = args[0], false
	}
	if root == "" {
		return nil, errors.New(errors.ErrInvalidInput, MsgErrNoRoot)
	}
	resolved, err := paths.ResolveRoot(root, configured)
	if err != nil {
		return nil, err
	}
	if resolved.FromProjectRoot {
		log.Info().Str("root", resolved.Path).Msg("Using resource root below the git repository root")
	}

	grammar, err := cfg.Grammar()
	if err != nil {
		return nil, err
	}

	format, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "invalid output format")
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		grammar:  grammar,
		root:     resolved.Path,
		fs:       filesystem.NewOS(),
		renderer: renderer,
	}, nil
}

// confirmFold asks before merging. Nothing is asked when no variant would
// be merged.
func confirmFold(cmd *cobra.Command, engine *consolidate.Engine, root string) (bool, error) {
	decisions, err := engine.Plan(root)
	if err != nil {
		return false, err
	}

	merges := 0
	for _, d := range decisions {
		if d.Outcome == report.OutcomeMerged && d.Err == nil {
			merges++
		}
	}
	if merges == 0 {
		return true, nil
	}

	suffix := "ies"
	if merges == 1 {
		suffix = "y"
	}
	dialog := confirmations.NewConsoleDialog(cmd.InOrStdin(), cmd.ErrOrStderr())
	return dialog.Confirm(fmt.Sprintf(MsgConfirmFold, merges, suffix, root), false)
}
