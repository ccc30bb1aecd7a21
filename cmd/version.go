package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fulmenhq/ruletune/pkg/buildinfo"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show ruletune build information",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().Bool("json", false, "Output version information in JSON format")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	info := buildinfo.Current()
	out := cmd.OutOrStdout()

	if jsonOutput {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode version info: %w", err)
		}
		_, _ = fmt.Fprintln(out, string(data))
		return nil
	}

	_, _ = fmt.Fprintf(out, "ruletune %s\n", info.Version)
	if info.ModuleVersion != "" && info.ModuleVersion != info.Version {
		_, _ = fmt.Fprintf(out, "Module: %s\n", info.ModuleVersion)
	}
	_, _ = fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
	_, _ = fmt.Fprintf(out, "Platform: %s/%s\n", info.Platform, info.Arch)
	return nil
}
