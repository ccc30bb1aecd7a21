package cmd

import (
	"errors"
	"os"

	"github.com/fulmenhq/ruletune/pkg/buildinfo"
	"github.com/fulmenhq/ruletune/pkg/exitcode"
	"github.com/fulmenhq/ruletune/pkg/logger"
	"github.com/fulmenhq/ruletune/pkg/tuning"
	"github.com/spf13/cobra"
)

// errInvalidConfig marks failures to load or validate configuration.
var errInvalidConfig = errors.New("invalid configuration")

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ruletune",
		Short: "Tune detection rule levels from an override file",
		Long: `Ruletune re-labels the level of detection rules in place, driven by a
level tuning file of "<rule id>,<level>" rows.

Examples:
   ruletune level-tuning                         # Apply ./rules/config/level_tuning.txt to ./rules
   ruletune level-tuning -f tuning.txt -d sigma  # Custom tuning file and corpus
   ruletune list --min-level high                # Show the corpus at or above high
   ruletune version --json                       # Build information`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	// Add global flags
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().Bool("no-op", false, "Report changes without writing rule files")
	cmd.PersistentFlags().String("config", "", "Config file (default: ruletune.yaml in cwd, $HOME or $RULETUNE_HOME/config)")

	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("ruletune {{.Version}}\n")

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
// This is called from init() for production and can be called explicitly in tests.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(newLevelTuningCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newVersionCommand())
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitCodeFor(err))
	}
}

func init() {
	registerSubcommands(rootCmd)
}

// exitCodeFor maps a command error to the process exit code.
func exitCodeFor(err error) int {
	if err == nil {
		return exitcode.Success
	}
	if kind, ok := tuning.KindOf(err); ok {
		switch kind {
		case tuning.KindMapping:
			return exitcode.MappingError
		case tuning.KindCorpus:
			return exitcode.CorpusError
		case tuning.KindPolicy:
			return exitcode.PolicyError
		case tuning.KindIO:
			return exitcode.FileSystemError
		}
	}
	if errors.Is(err, errInvalidConfig) {
		return exitcode.ConfigError
	}
	return exitcode.GeneralError
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")
	noOp, _ := cmd.Flags().GetBool("no-op")

	logLevel, ok := logger.ParseLevel(logLevelStr)
	if !ok {
		logLevel = logger.InfoLevel
	}

	config := logger.Config{
		Level:     logLevel,
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "ruletune",
		NoOp:      noOp,
		Output:    cmd.ErrOrStderr(),
	}

	if err := logger.Initialize(config); err != nil {
		_, _ = os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(exitcode.ConfigError)
	}
}
