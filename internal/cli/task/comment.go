package task

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/sidechannel"
)

// CommentCmd returns the task comment subcommand
func CommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment <task-id> [text]",
		Short: "Add a comment, or list comments when no text is given",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runComment,
	}

	cmd.Flags().String("by", "", "Author name (defaults to the logged-in user)")
	addProjectFlag(cmd)
	addOutputFlags(cmd)
	return cmd
}

func runComment(cmd *cobra.Command, args []string) error {
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
		comments, err := side.Comments(ctx, taskID)
		if err != nil {
			_ = formatter.Error("COMMENT_LIST_ERROR", err.Error())
			return err
		}
		if formatter.JSON {
			return json.NewEncoder(os.Stdout).Encode(map[string]any{
				"success":  true,
				"comments": comments,
			})
		}
		for _, cm := range comments {
			fmt.Printf("%s  %s: %s\n", cm.At, cm.By, cm.Text)
		}
		return nil
	}

	by, _ := cmd.Flags().GetString("by")
	if by == "" {
		by = currentUserName(ctx, c)
	}

	comment, err := side.AddComment(ctx, taskID, by, args[1])
	if err != nil {
		if err == sidechannel.ErrEmptyText {
			_ = formatter.Error("EMPTY_TEXT", "comment text must not be blank")
			os.Exit(cli.ExitValidation)
		}
		_ = formatter.Error("COMMENT_ADD_ERROR", err.Error())
		return err
	}

	if formatter.Quiet {
		fmt.Println(comment.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"comment": comment,
		})
	}
	fmt.Printf("Comment added to task %s\n", taskID)
	return nil
}

// currentUserName asks the directory who holds the session token, falling
// back to the local username when unauthenticated or offline.
func currentUserName(ctx context.Context, c *cli.CLI) string {
	if user, err := c.App.Directory.WhoAmI(ctx); err == nil {
		if name := strings.TrimSpace(user.DisplayName()); name != "" {
			return name
		}
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "me"
}
