package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/cli/styles"
)

// UsersCmd returns the users command
func UsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List directory users",
		RunE:  runUsers,
	}

	cmd.Flags().Int("page", 1, "Page number")
	cmd.Flags().Int("limit", 50, "Page size")
	addOutputFlags(cmd)
	return cmd
}

func runUsers(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)

	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")

	c, err := cli.NewCLI(ctx)
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return err
	}
	defer func() { _ = c.Close() }()

	users, err := c.App.Directory.ListUsers(ctx, page, limit)
	if err != nil {
		_ = formatter.ErrorWithSuggestion("DIRECTORY_ERROR", err.Error(),
			"Check the API base URL in the config and log in with 'pipeboard login'")
		os.Exit(cli.ExitError)
	}

	if formatter.Quiet {
		for _, u := range users {
			fmt.Println(u.ID)
		}
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"users":   users,
		})
	}
	for _, u := range users {
		line := fmt.Sprintf("%4d  %s", u.ID, u.DisplayName())
		if u.Role != "" {
			line += styles.SubtitleStyle.Render("  " + u.Role)
		}
		fmt.Println(line)
	}
	return nil
}
