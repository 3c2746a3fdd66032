package column

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/board"
	"github.com/tranvq/pipeboard/internal/cli"
)

// UpdateCmd returns the column update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <column>",
		Short: "Update a column's title or color",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpdate,
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("color", "", "New color (#RRGGBB)")
	addProjectFlag(cmd)
	addOutputFlags(cmd)
	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)

	c, err := cli.NewCLI(ctx)
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return err
	}
	defer func() { _ = c.Close() }()

	svc, err := boardFor(ctx, cmd, c)
	if err != nil {
		_ = formatter.Error("PROJECT_NOT_FOUND", err.Error())
		os.Exit(cli.ExitNotFound)
	}

	cols, err := svc.Load(ctx)
	if err != nil {
		_ = formatter.Error("BOARD_LOAD_ERROR", err.Error())
		return err
	}
	col := findColumnByRef(cols, args[0])
	if col == nil {
		_ = formatter.ErrorWithSuggestion("COLUMN_NOT_FOUND",
			fmt.Sprintf("column %q not found", args[0]),
			"Use 'pipeboard column list' to see available columns")
		os.Exit(cli.ExitNotFound)
	}

	var req board.UpdateColumnRequest
	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		req.Title = &title
	}
	if cmd.Flags().Changed("color") {
		color, _ := cmd.Flags().GetString("color")
		if color != "" {
			if err := cli.ValidateColorHex(color); err != nil {
				_ = formatter.Error("INVALID_COLOR", err.Error())
				os.Exit(cli.ExitValidation)
			}
		}
		req.Color = &color
	}

	if err := svc.UpdateColumn(ctx, col.ID, req); err != nil {
		if err == board.ErrEmptyTitle {
			_ = formatter.Error("EMPTY_TITLE", "column title must not be blank")
			os.Exit(cli.ExitValidation)
		}
		_ = formatter.Error("COLUMN_UPDATE_ERROR", err.Error())
		return err
	}

	if formatter.Quiet {
		fmt.Println(col.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"column":  col.ID,
		})
	}
	fmt.Printf("Column %s updated\n", col.ID)
	return nil
}
