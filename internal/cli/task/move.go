package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/board"
	"github.com/tranvq/pipeboard/internal/cli"
)

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <task-id>",
		Short: "Move a task to another column",
		Long: `Move a task to the end of another column. All task fields travel
with it.`,
		Args: cobra.ExactArgs(1),
		RunE: runMove,
	}

	cmd.Flags().String("to", "", "Destination column id or title (required)")
	_ = cmd.MarkFlagRequired("to")
	addProjectFlag(cmd)
	addOutputFlags(cmd)
	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)
	taskID := args[0]
	toRef, _ := cmd.Flags().GetString("to")

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
	from, t := findTask(cols, taskID)
	if t == nil {
		_ = formatter.ErrorWithSuggestion("TASK_NOT_FOUND",
			fmt.Sprintf("task %q not found", taskID),
			"Use 'pipeboard task list' to see task ids")
		os.Exit(cli.ExitNotFound)
	}
	to := findColumnByRef(cols, toRef)
	if to == nil {
		_ = formatter.ErrorWithSuggestion("COLUMN_NOT_FOUND",
			fmt.Sprintf("column %q not found", toRef),
			"Use 'pipeboard column list' to see available columns")
		os.Exit(cli.ExitNotFound)
	}

	if err := svc.MoveTask(ctx, taskID, from.ID, to.ID); err != nil {
		if errors.Is(err, board.ErrTaskNotFound) || errors.Is(err, board.ErrColumnNotFound) {
			_ = formatter.Error("MOVE_ERROR", err.Error())
			os.Exit(cli.ExitNotFound)
		}
		_ = formatter.Error("TASK_MOVE_ERROR", err.Error())
		return err
	}

	if formatter.Quiet {
		fmt.Println(taskID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"task":    taskID,
			"from":    from.ID,
			"to":      to.ID,
		})
	}
	fmt.Printf("Task %q moved: %s -> %s\n", t.Title, from.Title, to.Title)
	return nil
}
