package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/directory"
)

// LogsCmd returns the profile logs subcommand
func LogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show your personal activity feed",
		RunE:  runLogs,
	}

	cmd.Flags().Int("page", 1, "Page number")
	cmd.Flags().Int("page-size", 10, "Page size")
	cmd.Flags().String("type", "", "Filter by entry type")
	addOutputFlags(cmd)
	return cmd
}

func runLogs(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)

	page, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")
	entryType, _ := cmd.Flags().GetString("type")

	c, err := cli.NewCLI(ctx)
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return err
	}
	defer func() { _ = c.Close() }()

	logs, err := c.App.Directory.MyActivityLogs(ctx, directory.ActivityLogsRequest{
		Page:     page,
		PageSize: pageSize,
		Type:     entryType,
	})
	if err != nil {
		_ = formatter.ErrorWithSuggestion("LOGS_ERROR", err.Error(),
			"Log in first with 'pipeboard login --login=<name>'")
		os.Exit(cli.ExitError)
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"logs":    logs,
		})
	}
	for _, entry := range logs {
		fmt.Printf("%s  %-12s %s\n", entry.CreatedAt, entry.Type, entry.Message)
	}
	return nil
}
