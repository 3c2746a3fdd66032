package task

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/board"
	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/models"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update task fields",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpdate,
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("status", "", "Status: plan, prepare, in_progress, done")
	cmd.Flags().String("type", "", "Type: task, info, request")
	cmd.Flags().String("priority", "", "Priority: low, medium, high")
	cmd.Flags().String("assignee", "", "Assignee display name")
	cmd.Flags().Int("assignee-id", 0, "Assignee directory user id")
	cmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringSlice("tag", nil, "Replace tags (repeatable)")
	addProjectFlag(cmd)
	addOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)
	taskID := args[0]

	var req board.UpdateTaskRequest
	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		req.Title = &title
	}
	if cmd.Flags().Changed("description") {
		description, _ := cmd.Flags().GetString("description")
		req.Description = &description
	}
	if cmd.Flags().Changed("status") {
		status, _ := cmd.Flags().GetString("status")
		parsed, err := cli.ParseTaskStatus(status)
		if err != nil {
			_ = formatter.Error("INVALID_STATUS", err.Error())
			os.Exit(cli.ExitValidation)
		}
		req.Status = &parsed
	}
	if cmd.Flags().Changed("type") {
		taskType, _ := cmd.Flags().GetString("type")
		parsed, err := cli.ParseTaskType(taskType)
		if err != nil {
			_ = formatter.Error("INVALID_TYPE", err.Error())
			os.Exit(cli.ExitValidation)
		}
		req.Type = &parsed
	}
	if cmd.Flags().Changed("priority") {
		priority, _ := cmd.Flags().GetString("priority")
		parsed, err := cli.ParsePriority(priority)
		if err != nil {
			_ = formatter.Error("INVALID_PRIORITY", err.Error())
			os.Exit(cli.ExitValidation)
		}
		req.Priority = &parsed
	}
	if cmd.Flags().Changed("assignee") {
		assignee, _ := cmd.Flags().GetString("assignee")
		req.Assignee = &assignee
	}
	if cmd.Flags().Changed("assignee-id") {
		assigneeID, _ := cmd.Flags().GetInt("assignee-id")
		req.AssigneeID = &assigneeID
	}
	if cmd.Flags().Changed("start") {
		start, _ := cmd.Flags().GetString("start")
		req.StartAt = &start
	}
	if cmd.Flags().Changed("end") {
		end, _ := cmd.Flags().GetString("end")
		req.EndAt = &end
	}
	if cmd.Flags().Changed("tag") {
		tags, _ := cmd.Flags().GetStringSlice("tag")
		req.Tags = &tags
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

	if err := svc.UpdateTask(ctx, taskID, req); err != nil {
		_ = formatter.Error("TASK_UPDATE_ERROR", err.Error())
		return err
	}

	cols, err := svc.Load(ctx)
	if err != nil {
		_ = formatter.Error("BOARD_LOAD_ERROR", err.Error())
		return err
	}
	var updated *models.Task
	if _, t := findTask(cols, taskID); t != nil {
		updated = t
	}

	if formatter.Quiet {
		fmt.Println(taskID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"task":    updated,
		})
	}
	if updated == nil {
		fmt.Printf("Task %s not found; nothing changed\n", taskID)
		return nil
	}
	fmt.Printf("Task %q updated\n", updated.Title)
	return nil
}
