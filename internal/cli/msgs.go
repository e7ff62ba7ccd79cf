package cli

import (
	"embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Fold regional locale directories into their base locale"
	MsgFoldShort       = "Merge variant directories into their base directories"
	MsgPlanShort       = "Show what fold would do without changing anything"
	MsgNormalizeShort  = "Replace escaped sequences in locale resource files"
	MsgScanShort       = "List the locale directories of a resource tree"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgConfirmFold    = "Merge %d variant director%s under %s into their base?"
	MsgAborted        = "Aborted, nothing was changed."
	MsgConfigSources  = "# loaded from: %s\n"
	MsgConfigBuiltins = "# built-in defaults only\n"

	// Error messages
	MsgErrLoadConfig  = "failed to load configuration: %w"
	MsgErrNoRoot      = "no resource root given and resource_root is not configured"
	MsgErrTopics      = "failed to load help topics: %w"
	MsgErrReportFails = "%s finished with %d error(s)"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "Configuration file, layered over .locfold.toml"
	MsgFlagFormat    = "Output format: auto, term, text, json or yaml"
	MsgFlagDryRun    = "Report what would change without touching files"
	MsgFlagYes       = "Do not ask for confirmation"
	MsgFlagException = "Variant to leave untouched (repeatable, replaces the configured set)"
	MsgFlagPrefix    = "Locale directory prefix"
	MsgFlagGenerate  = "Print a commented-out starter configuration"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/fold-long.txt
	msgFoldLongRaw string
	MsgFoldLong    = strings.TrimSpace(msgFoldLongRaw)

	//go:embed msgs/fold-example.txt
	msgFoldExampleRaw string
	MsgFoldExample    = strings.TrimRight(msgFoldExampleRaw, "\n")

	//go:embed msgs/plan-long.txt
	msgPlanLongRaw string
	MsgPlanLong    = strings.TrimSpace(msgPlanLongRaw)

	//go:embed msgs/normalize-long.txt
	msgNormalizeLongRaw string
	MsgNormalizeLong    = strings.TrimSpace(msgNormalizeLongRaw)

	//go:embed msgs/normalize-example.txt
	msgNormalizeExampleRaw string
	MsgNormalizeExample    = strings.TrimRight(msgNormalizeExampleRaw, "\n")

	//go:embed msgs/scan-long.txt
	msgScanLongRaw string
	MsgScanLong    = strings.TrimSpace(msgScanLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	MsgUsageTemplate string
)

// helpTopics holds the markdown guides served by `locfold help <topic>`
//
//go:embed topics/*.md
var helpTopics embed.FS
