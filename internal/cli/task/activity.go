package task

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/models"
)

// ActivityCmd returns the task activity subcommand
func ActivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity <task-id>",
		Short: "Show a task's activity log",
		Long: `Show a task's activity log, newest first. With --log an entry is
appended instead.`,
		Args: cobra.ExactArgs(1),
		RunE: runActivity,
	}

	cmd.Flags().String("log", "", "Append an entry with this detail text")
	cmd.Flags().String("type", models.ActivityEdit, "Entry type: view, edit, move, comment, file")
	addProjectFlag(cmd)
	addOutputFlags(cmd)
	return cmd
}

func runActivity(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)
	taskID := args[0]

	c, err := cli.NewCLI(ctx)
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return err
	}
	defer func() { _ = c.Close() }()

	_, projectID, err := boardFor(ctx, cmd, c)
	if err != nil {
		_ = formatter.Error("PROJECT_NOT_FOUND", err.Error())
		os.Exit(cli.ExitNotFound)
	}
	side := c.App.SideChannelsFor(projectID)

	detail, _ := cmd.Flags().GetString("log")
	if detail != "" {
		entryType, _ := cmd.Flags().GetString("type")
		switch entryType {
		case models.ActivityView, models.ActivityEdit, models.ActivityMove,
			models.ActivityComment, models.ActivityFile:
		default:
			_ = formatter.Error("INVALID_TYPE",
				fmt.Sprintf("invalid activity type %q (must be: view, edit, move, comment, file)", entryType))
			os.Exit(cli.ExitValidation)
		}

		actor := models.Actor{Name: currentUserName(ctx, c)}
		entry, err := side.LogActivity(ctx, taskID, actor, entryType, detail)
		if err != nil {
			_ = formatter.Error("ACTIVITY_LOG_ERROR", err.Error())
			return err
		}
		if formatter.Quiet {
			fmt.Println(entry.ID)
			return nil
		}
		if formatter.JSON {
			return json.NewEncoder(os.Stdout).Encode(map[string]any{
				"success": true,
				"entry":   entry,
			})
		}
		fmt.Printf("Activity recorded on task %s\n", taskID)
		return nil
	}

	entries, err := side.Activity(ctx, taskID)
	if err != nil {
		_ = formatter.Error("ACTIVITY_LIST_ERROR", err.Error())
		return err
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":  true,
			"activity": entries,
		})
	}
	for _, entry := range entries {
		fmt.Printf("%s  %-8s %s  %s\n", entry.At, entry.Type, entry.Actor.Name, entry.Detail)
	}
	return nil
}
