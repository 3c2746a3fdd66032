package task

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/board"
	"github.com/tranvq/pipeboard/internal/cli"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a new task in a column.

Examples:
  # Task on a project board
  pipeboard task create --project=demo --column=todo --title="Order parts"

  # Quiet mode for shell capture
  TASK_ID=$(pipeboard task create --column=todo --title="Order parts" --quiet)

  # Description from stdin
  cat notes.md | pipeboard task create --column=todo --title="Order parts" --description=-
`,
		RunE: runCreate,
	}

	cmd.Flags().String("title", "", "Task title (required)")
	_ = cmd.MarkFlagRequired("title")
	cmd.Flags().String("column", "", "Column id or title (defaults to the first column)")
	cmd.Flags().String("description", "", "Task description (use - for stdin)")
	cmd.Flags().String("type", "task", "Task type: task, info, request")
	cmd.Flags().String("priority", "", "Priority: low, medium, high")
	addProjectFlag(cmd)
	addOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)

	title, _ := cmd.Flags().GetString("title")
	columnRef, _ := cmd.Flags().GetString("column")
	description, _ := cmd.Flags().GetString("description")
	taskType, _ := cmd.Flags().GetString("type")
	priority, _ := cmd.Flags().GetString("priority")

	if taskType != "" {
		var err error
		if taskType, err = cli.ParseTaskType(taskType); err != nil {
			_ = formatter.ErrorWithSuggestion("INVALID_TYPE", err.Error(),
				"Valid types are: task, info, request")
			os.Exit(cli.ExitValidation)
		}
	}
	if priority != "" {
		var err error
		if priority, err = cli.ParsePriority(priority); err != nil {
			_ = formatter.ErrorWithSuggestion("INVALID_PRIORITY", err.Error(),
				"Valid priorities are: low, medium, high")
			os.Exit(cli.ExitValidation)
		}
	}

	if description == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			_ = formatter.Error("STDIN_READ_ERROR", err.Error())
			return err
		}
		description = string(data)
	}

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

	columnID := ""
	if columnRef == "" {
		if len(cols) == 0 {
			_ = formatter.Error("NO_COLUMNS", "board has no columns")
			return fmt.Errorf("board has no columns")
		}
		columnID = cols[0].ID
	} else {
		col := findColumnByRef(cols, columnRef)
		if col == nil {
			_ = formatter.ErrorWithSuggestion("COLUMN_NOT_FOUND",
				fmt.Sprintf("column %q not found", columnRef),
				"Use 'pipeboard column list' to see available columns")
			os.Exit(cli.ExitNotFound)
		}
		columnID = col.ID
	}

	created, err := svc.AddTask(ctx, columnID, board.AddTaskRequest{Title: title, Type: taskType})
	if err != nil {
		if err == board.ErrEmptyTitle {
			_ = formatter.Error("EMPTY_TITLE", "task title must not be blank")
			os.Exit(cli.ExitValidation)
		}
		_ = formatter.Error("TASK_CREATE_ERROR", err.Error())
		return err
	}

	// Description and priority are applied as a follow-up patch; creation
	// only fixes the identity fields.
	if description != "" || priority != "" {
		patch := board.UpdateTaskRequest{}
		if description != "" {
			patch.Description = &description
		}
		if priority != "" {
			patch.Priority = &priority
		}
		if err := svc.UpdateTask(ctx, created.ID, patch); err != nil {
			_ = formatter.Error("TASK_UPDATE_ERROR", err.Error())
			return err
		}
	}

	if formatter.Quiet {
		fmt.Println(created.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"task":    created,
		})
	}
	fmt.Printf("Task %q created (ID: %s)\n", created.Title, created.ID)
	return nil
}
