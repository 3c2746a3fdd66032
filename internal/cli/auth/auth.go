// Package auth implements the login, whoami and users commands against the
// external directory service.
package auth

import (
	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
)

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")
}

func formatterFor(cmd *cobra.Command) *cli.OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}
