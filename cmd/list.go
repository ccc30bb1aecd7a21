package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fulmenhq/ruletune/pkg/config"
	"github.com/fulmenhq/ruletune/pkg/ignore"
	"github.com/fulmenhq/ruletune/pkg/report"
	"github.com/fulmenhq/ruletune/pkg/rule"
	"github.com/fulmenhq/ruletune/pkg/severity"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

// maxTitleWidth caps the title column, measured in terminal cells.
const maxTitleWidth = 60

func newListCommand() *cobra.Command {
	defaults := config.Defaults()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the rules of a corpus with their current level",
		Long: `List rules below a rule directory, sorted by path. Rules listed in the
exclude and noisy files are hidden unless requested.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().StringP("directory", "d", defaults.Rules.Path, "Rule file or directory")
	cmd.Flags().String("min-level", string(severity.Informational), "Lowest level to show ("+severity.Names()+")")
	cmd.Flags().Bool("include-noisy", false, "Show rules listed in the noisy rules file")
	cmd.Flags().Bool("include-excluded", false, "Show rules listed in the exclude rules file")
	cmd.Flags().Bool("strict", defaults.Rules.Strict, "Fail on the first unparsable rule file")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, map[string]string{
		"rules.path":   "directory",
		"rules.strict": "strict",
	})
	if err != nil {
		return err
	}
	minLevelStr, _ := cmd.Flags().GetString("min-level")
	includeNoisy, _ := cmd.Flags().GetBool("include-noisy")
	includeExcluded, _ := cmd.Flags().GetBool("include-excluded")
	noColor, _ := cmd.Flags().GetBool("no-color")

	minLevel, ok := severity.Parse(minLevelStr)
	if !ok {
		return fmt.Errorf("invalid --min-level %q, must be in %s", minLevelStr, severity.Names())
	}

	var lists []string
	if !includeExcluded {
		lists = append(lists, cfg.Rules.ExcludeFile)
	}
	if !includeNoisy {
		lists = append(lists, cfg.Rules.NoisyFile)
	}
	exclusions, err := rule.LoadExclusions(lists...)
	if err != nil {
		return err
	}

	loader, err := newListLoader(cfg)
	if err != nil {
		return err
	}
	corpus, err := loader.Load(cfg.Rules.Path, minLevel, exclusions)
	if err != nil {
		return err
	}

	printer, err := report.New(cmd.OutOrStdout(), report.Options{Color: !noColor})
	if err != nil {
		return err
	}
	printRuleTable(printer, corpus)
	return nil
}

func printRuleTable(p *report.Printer, corpus *rule.Corpus) {
	levelWidth := len("LEVEL")
	titleWidth := len("TITLE")
	for _, r := range corpus.Rules {
		levelWidth = max(levelWidth, runewidth.StringWidth(r.Level))
		titleWidth = max(titleWidth, runewidth.StringWidth(fitTitle(r.Title)))
	}

	p.PrintLine(fmt.Sprintf("%s  %-36s  %s  %s",
		runewidth.FillRight("LEVEL", levelWidth), "ID",
		runewidth.FillRight("TITLE", titleWidth), "PATH"), true)

	for _, r := range corpus.Rules {
		// pad before coloring so escape codes do not skew the columns
		level := p.Level(r.Level) + strings.Repeat(" ", levelWidth-runewidth.StringWidth(r.Level))
		p.PrintLine(fmt.Sprintf("%s  %-36s  %s  %s",
			level, r.ID, runewidth.FillRight(fitTitle(r.Title), titleWidth), r.Path), true)
	}

	p.PrintLine(fmt.Sprintf("\n%d rules, %d filtered, %d unreadable",
		corpus.Len(), corpus.Skipped, len(corpus.Diagnostics)), true)
	for _, d := range corpus.Diagnostics {
		p.PrintLine("  "+d.Error(), true)
	}
}

func fitTitle(title string) string {
	return runewidth.Truncate(title, maxTitleWidth, "...")
}

// newListLoader builds the loader for list, pruned by ignore files unless
// rules.respect_ignore is off.
func newListLoader(cfg *config.Config) (*rule.Loader, error) {
	loader := &rule.Loader{
		Include: cfg.Rules.Include,
		Strict:  cfg.Rules.Strict,
	}
	if !cfg.Rules.RespectIgnore {
		return loader, nil
	}
	// A single-file corpus has nothing to prune; a missing root is reported by the loader.
	if info, err := os.Stat(cfg.Rules.Path); err != nil || !info.IsDir() {
		return loader, nil
	}
	matcher, err := ignore.NewMatcher(cfg.Rules.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load ignore patterns: %w", err)
	}
	loader.Ignore = matcher
	return loader, nil
}
