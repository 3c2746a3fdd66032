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

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a new project with the default pipeline.

Examples:
  # Simple project (human-readable output)
  pipeboard project create --name="Plant retrofit"

  # Quiet mode for shell capture
  PROJECT_ID=$(pipeboard project create --name="Plant retrofit" --quiet)

  # With participants (directory user ids)
  pipeboard project create --name="Plant retrofit" --participant=3 --participant=7
`,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Project name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().String("description", "", "Project description")
	cmd.Flags().IntSlice("participant", nil, "Participant user id (repeatable)")
	cmd.Flags().String("cover", "", "Cover image URL")
	addOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)

	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	participants, _ := cmd.Flags().GetIntSlice("participant")
	cover, _ := cmd.Flags().GetString("cover")

	c, err := cli.NewCLI(ctx)
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return err
	}
	defer func() { _ = c.Close() }()

	p, err := c.App.Projects.Create(ctx, project.CreateRequest{
		Name:         name,
		Description:  description,
		Participants: participants,
		Cover:        cover,
	})
	if err != nil {
		if err == project.ErrEmptyName {
			_ = formatter.Error("EMPTY_NAME", "project name must not be blank")
			os.Exit(cli.ExitValidation)
		}
		_ = formatter.Error("PROJECT_CREATE_ERROR", err.Error())
		return err
	}

	if formatter.Quiet {
		fmt.Println(p.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"project": p,
		})
	}

	fmt.Printf("Project %q created (ID: %s)\n", p.Name, p.ID)
	fmt.Printf("  Stages: %d top-level, first stage active\n", len(p.Pipeline))
	return nil
}
