// Package stage implements the pipeline subcommands.
package stage

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/models"
)

// StageCmd returns the stage parent command
func StageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Manage a project's pipeline stages",
	}

	cmd.AddCommand(TreeCmd())
	cmd.AddCommand(StartCmd())
	cmd.AddCommand(DoneCmd())
	cmd.AddCommand(SkipCmd())
	cmd.AddCommand(AddCmd())
	cmd.AddCommand(RemoveCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(ResetCmd())

	return cmd
}

// loadProject resolves the --project flag into a migrated project record.
func loadProject(ctx context.Context, cmd *cobra.Command, c *cli.CLI) (*models.Project, error) {
	ref, _ := cmd.Flags().GetString("project")
	list, err := c.App.Projects.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		if p.ID == ref || strings.EqualFold(p.Name, ref) {
			return c.App.Projects.Get(ctx, p.ID)
		}
	}
	return nil, fmt.Errorf("project %q not found", ref)
}

func addProjectFlag(cmd *cobra.Command) {
	cmd.Flags().String("project", "", "Project id or name (required)")
	_ = cmd.MarkFlagRequired("project")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")
}

func formatterFor(cmd *cobra.Command) *cli.OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}
