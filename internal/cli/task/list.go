package task

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/board"
	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/cli/styles"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks by column",
		Long: `List the board's tasks grouped by column.

The --filter flag keeps only tasks whose title or description contains the
query, case-insensitively. Columns stay visible even when emptied.`,
		RunE: runList,
	}

	cmd.Flags().String("filter", "", "Case-insensitive substring filter")
	addProjectFlag(cmd)
	addOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)

	c, err := cli.NewCLI(ctx)
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return err
	}
	defer func() { _ = c.Close() }()

	svc, _, err := boardFor(ctx, cmd, c)
	if err != nil {
		_ = formatter.Error("PROJECT_NOT_FOUND", err.Error())
		os.Exit(cli.ExitNotFound)
	}

	cols, err := svc.Load(ctx)
	if err != nil {
		_ = formatter.Error("BOARD_LOAD_ERROR", err.Error())
		return err
	}

	query, _ := cmd.Flags().GetString("filter")
	cols = board.Filter(cols, query)

	if formatter.Quiet {
		for _, col := range cols {
			for _, t := range col.Tasks {
				fmt.Println(t.ID)
			}
		}
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"columns": cols,
		})
	}

	for _, col := range cols {
		fmt.Printf("%s (%d)\n", styles.RenderColumnChip(col), len(col.Tasks))
		for _, t := range col.Tasks {
			line := fmt.Sprintf("  %s  %s", styles.SubtitleStyle.Render(t.ID), t.Title)
			if t.Priority != "" {
				line += styles.SubtitleStyle.Render("  [" + t.Priority + "]")
			}
			if t.EndAt != "" {
				line += styles.SubtitleStyle.Render("  due " + t.EndAt)
			}
			fmt.Println(line)
		}
	}
	return nil
}
