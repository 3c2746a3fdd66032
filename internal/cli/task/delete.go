package task

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task and its comments, files and activity",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}

	addProjectFlag(cmd)
	addOutputFlags(cmd)
	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)
	taskID := args[0]

	c, err := cli.NewCLI(ctx)
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return err
	}
	defer func() { _ = c.Close() }()

	svc, projectID, err := boardFor(ctx, cmd, c)
	if err != nil {
		_ = formatter.Error("PROJECT_NOT_FOUND", err.Error())
		os.Exit(cli.ExitNotFound)
	}

	if err := svc.DeleteTask(ctx, taskID); err != nil {
		_ = formatter.Error("TASK_DELETE_ERROR", err.Error())
		return err
	}
	if err := c.App.SideChannelsFor(projectID).Clear(ctx, taskID); err != nil {
		_ = formatter.Error("SIDECHANNEL_CLEAR_ERROR", err.Error())
		return err
	}

	if formatter.Quiet {
		fmt.Println(taskID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"deleted": taskID,
		})
	}
	fmt.Printf("Task %s deleted\n", taskID)
	return nil
}
