package column

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
)

// MoveCmd returns the column move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <column>",
		Short: "Move a column before another column",
		Args:  cobra.ExactArgs(1),
		RunE:  runMove,
	}

	cmd.Flags().String("before", "", "Destination column id or title (required)")
	_ = cmd.MarkFlagRequired("before")
	addProjectFlag(cmd)
	addOutputFlags(cmd)
	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
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
	from := findColumnByRef(cols, args[0])
	beforeRef, _ := cmd.Flags().GetString("before")
	to := findColumnByRef(cols, beforeRef)
	if from == nil || to == nil {
		_ = formatter.ErrorWithSuggestion("COLUMN_NOT_FOUND",
			"source or destination column not found",
			"Use 'pipeboard column list' to see available columns")
		os.Exit(cli.ExitNotFound)
	}

	if err := svc.MoveColumn(ctx, from.ID, to.ID); err != nil {
		_ = formatter.Error("COLUMN_MOVE_ERROR", err.Error())
		return err
	}

	if formatter.Quiet {
		fmt.Println(from.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"moved":   from.ID,
			"before":  to.ID,
		})
	}
	fmt.Printf("Column %q moved before %q\n", from.Title, to.Title)
	return nil
}
