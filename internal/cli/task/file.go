package task

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
)

// FileCmd returns the task file subcommand
func FileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file <task-id> [path]",
		Short: "Attach a file's metadata, or list attachments when no path is given",
		Long: `Record a file against a task. Only the name and size are stored;
the file contents stay where they are.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runFile,
	}

	addProjectFlag(cmd)
	addOutputFlags(cmd)
	return cmd
}

func runFile(cmd *cobra.Command, args []string) error {
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

	if len(args) == 1 {
		files, err := side.Files(ctx, taskID)
		if err != nil {
			_ = formatter.Error("FILE_LIST_ERROR", err.Error())
			return err
		}
		if formatter.JSON {
			return json.NewEncoder(os.Stdout).Encode(map[string]any{
				"success": true,
				"files":   files,
			})
		}
		for _, f := range files {
			fmt.Printf("%s  %s (%d bytes)\n", f.AddedAt, f.Name, f.Size)
		}
		return nil
	}

	info, err := os.Stat(args[1])
	if err != nil {
		_ = formatter.Error("FILE_STAT_ERROR", err.Error())
		os.Exit(cli.ExitNotFound)
	}

	meta, err := side.AddFile(ctx, taskID, filepath.Base(args[1]), info.Size(), currentUserName(ctx, c))
	if err != nil {
		_ = formatter.Error("FILE_ADD_ERROR", err.Error())
		return err
	}

	if formatter.Quiet {
		fmt.Println(meta.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"file":    meta,
		})
	}
	fmt.Printf("File %q recorded on task %s\n", meta.Name, taskID)
	return nil
}
