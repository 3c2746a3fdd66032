package project

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
)

// DeleteCmd returns the project delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <project>",
		Short: "Delete a project and everything attached to it",
		Long: `Delete a project along with its board, task records and chat.

This cannot be undone. Pass --force to skip the confirmation prompt.`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().Bool("force", false, "Skip confirmation prompt")
	addOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)

	c, err := cli.NewCLI(ctx)
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return err
	}
	defer func() { _ = c.Close() }()

	p, err := resolve(ctx, c, args[0])
	if err != nil {
		_ = formatter.ErrorWithSuggestion("PROJECT_NOT_FOUND", err.Error(),
			"Use 'pipeboard project list' to see available projects")
		os.Exit(cli.ExitNotFound)
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force && !formatter.JSON && !formatter.Quiet {
		fmt.Printf("Delete project %q with its board and task records? [y/N] ", p.Name)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := c.App.Projects.Remove(ctx, p.ID); err != nil {
		_ = formatter.Error("PROJECT_DELETE_ERROR", err.Error())
		return err
	}

	if formatter.Quiet {
		fmt.Println(p.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"deleted": p.ID,
		})
	}
	fmt.Printf("Project %q deleted\n", p.Name)
	return nil
}
