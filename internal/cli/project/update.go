package project

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/project"
)

// UpdateCmd returns the project update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <project>",
		Short: "Update project fields",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpdate,
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().IntSlice("participant", nil, "Replace participants (repeatable)")
	cmd.Flags().String("cover", "", "New cover image URL")
	addOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
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

	var req project.UpdateRequest
	if cmd.Flags().Changed("name") {
		name, _ := cmd.Flags().GetString("name")
		req.Name = &name
	}
	if cmd.Flags().Changed("description") {
		description, _ := cmd.Flags().GetString("description")
		req.Description = &description
	}
	if cmd.Flags().Changed("participant") {
		participants, _ := cmd.Flags().GetIntSlice("participant")
		req.Participants = &participants
	}
	if cmd.Flags().Changed("cover") {
		cover, _ := cmd.Flags().GetString("cover")
		req.Cover = &cover
	}

	updated, err := c.App.Projects.Update(ctx, p.ID, req)
	if err != nil {
		_ = formatter.Error("PROJECT_UPDATE_ERROR", err.Error())
		return err
	}

	if formatter.Quiet {
		fmt.Println(updated.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"project": updated,
		})
	}
	fmt.Printf("Project %q updated\n", updated.Name)
	return nil
}
