package cmd

import (
	"fmt"
	"os"

	"github.com/fulmenhq/ruletune/pkg/config"
	"github.com/fulmenhq/ruletune/pkg/logger"
	"github.com/fulmenhq/ruletune/pkg/report"
	"github.com/fulmenhq/ruletune/pkg/rule"
	"github.com/fulmenhq/ruletune/pkg/tuning"
	"github.com/spf13/cobra"
)

func newLevelTuningCommand() *cobra.Command {
	defaults := config.Defaults()

	cmd := &cobra.Command{
		Use:   "level-tuning",
		Short: "Rewrite rule levels from a level tuning file",
		Long: `Apply a level tuning file to a rule corpus. Each row of the file is
"<rule id>,<level>[#comment]"; every rule whose id is listed gets its
"level: <old>" line rewritten in place.`,
		Args: cobra.NoArgs,
		RunE: runLevelTuning,
	}

	cmd.Flags().StringP("file", "f", defaults.Tuning.File, "Level tuning file")
	cmd.Flags().StringP("directory", "d", defaults.Rules.Path, "Rule file or directory")
	cmd.Flags().Bool("header", defaults.Tuning.Header, "Treat the first row of the tuning file as a header")
	cmd.Flags().String("policy", defaults.Tuning.Policy, "Rego policy that must allow every level change")
	cmd.Flags().Bool("strict", defaults.Rules.Strict, "Fail on the first unparsable rule file")

	return cmd
}

func runLevelTuning(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, map[string]string{
		"tuning.file":   "file",
		"rules.path":    "directory",
		"tuning.header": "header",
		"tuning.policy": "policy",
		"rules.strict":  "strict",
	})
	if err != nil {
		return err
	}
	noOp, _ := cmd.Flags().GetBool("no-op")
	noColor, _ := cmd.Flags().GetBool("no-color")

	if _, err := os.Stat(cfg.Tuning.File); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(),
			"Need level_tuning.txt file to use level-tuning [default: %s]\n", config.Defaults().Tuning.File)
	}

	// Every discoverable rule is a tuning target, so ignore files do not apply here.
	loader := &rule.Loader{
		Include: cfg.Rules.Include,
		Strict:  cfg.Rules.Strict,
	}

	printer, err := report.New(cmd.OutOrStdout(), report.Options{
		Color:              !noColor,
		PathTemplate:       cfg.Report.PathTemplate,
		TransitionTemplate: cfg.Report.TransitionTemplate,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidConfig, err)
	}

	engine := &tuning.Engine{
		Loader:     loader,
		Reporter:   printer,
		PolicyFile: cfg.Tuning.Policy,
		HasHeader:  cfg.Tuning.Header,
		NoOp:       noOp,
	}

	logger.Debug("Starting level tuning",
		logger.String("file", cfg.Tuning.File),
		logger.String("rules", cfg.Rules.Path),
		logger.Bool("header", cfg.Tuning.Header))

	return engine.Run(cmd.Context(), cfg.Tuning.File, cfg.Rules.Path)
}
