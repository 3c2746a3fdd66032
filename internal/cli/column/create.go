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

// CreateCmd returns the column create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new column",
		RunE:  runCreate,
	}

	cmd.Flags().String("title", "", "Column title (required)")
	_ = cmd.MarkFlagRequired("title")
	cmd.Flags().String("color", "", "Column color (#RRGGBB)")
	addProjectFlag(cmd)
	addOutputFlags(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)

	title, _ := cmd.Flags().GetString("title")
	color, _ := cmd.Flags().GetString("color")
	if color != "" {
		if err := cli.ValidateColorHex(color); err != nil {
			_ = formatter.Error("INVALID_COLOR", err.Error())
			os.Exit(cli.ExitValidation)
		}
	}

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

	col, err := svc.AddColumn(ctx, board.AddColumnRequest{Title: title, Color: color})
	if err != nil {
		if err == board.ErrEmptyTitle {
			_ = formatter.Error("EMPTY_TITLE", "column title must not be blank")
			os.Exit(cli.ExitValidation)
		}
		_ = formatter.Error("COLUMN_CREATE_ERROR", err.Error())
		return err
	}

	if formatter.Quiet {
		fmt.Println(col.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"column":  col,
		})
	}
	fmt.Printf("Column %q created (ID: %s)\n", col.Title, col.ID)
	return nil
}
