// Package column implements the kanban column subcommands.
package column

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/board"
	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/models"
)

// ColumnCmd returns the column parent command
func ColumnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Manage kanban columns",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(ResetCmd())

	return cmd
}

// boardFor resolves the --project flag into the board service.
func boardFor(ctx context.Context, cmd *cobra.Command, c *cli.CLI) (board.Service, error) {
	ref, _ := cmd.Flags().GetString("project")
	if ref == "" {
		return c.App.BoardFor(""), nil
	}
	list, err := c.App.Projects.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		if p.ID == ref || strings.EqualFold(p.Name, ref) {
			return c.App.BoardFor(p.ID), nil
		}
	}
	return nil, fmt.Errorf("project %q not found", ref)
}

// findColumnByRef matches a column by id or title, case-insensitively.
func findColumnByRef(cols []*models.Column, ref string) *models.Column {
	for _, col := range cols {
		if col.ID == ref || strings.EqualFold(col.Title, ref) {
			return col
		}
	}
	return nil
}

func addProjectFlag(cmd *cobra.Command) {
	cmd.Flags().String("project", "", "Project id or name (omit for the standalone board)")
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
