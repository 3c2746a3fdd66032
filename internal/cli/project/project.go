// Package project implements the project subcommands.
package project

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/models"
)

// ProjectCmd returns the project parent command
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(ViewCmd())
	cmd.AddCommand(SortCmd())

	return cmd
}

// resolve finds a project by id or exact name.
func resolve(ctx context.Context, c *cli.CLI, ref string) (*models.Project, error) {
	list, err := c.App.Projects.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		if p.ID == ref || strings.EqualFold(p.Name, ref) {
			// Reload through Get so legacy records are migrated.
			return c.App.Projects.Get(ctx, p.ID)
		}
	}
	return nil, fmt.Errorf("project %q not found", ref)
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

func formatterFor(cmd *cobra.Command) *cli.OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}
