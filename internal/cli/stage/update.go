package stage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/models"
	"github.com/tranvq/pipeboard/internal/pipeline"
)

// UpdateCmd returns the stage update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <stage>",
		Short: "Edit a stage's name, owners, dates or note",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpdate,
	}

	addProjectFlag(cmd)
	cmd.Flags().String("name", "", "New stage name")
	cmd.Flags().IntSlice("owner", nil, "Replace owners (directory user ids, repeatable)")
	cmd.Flags().String("start", "", "Start timestamp (YYYY-MM-DDTHH:MM)")
	cmd.Flags().String("end", "", "End timestamp (YYYY-MM-DDTHH:MM)")
	cmd.Flags().String("note", "", "Stage note")
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

	p, err := loadProject(ctx, cmd, c)
	if err != nil {
		_ = formatter.ErrorWithSuggestion("PROJECT_NOT_FOUND", err.Error(),
			"Use 'pipeboard project list' to see available projects")
		os.Exit(cli.ExitNotFound)
	}

	path, err := cli.FindStagePath(p.Pipeline, args[0])
	if err != nil {
		_ = formatter.Error("STAGE_NOT_FOUND", err.Error())
		os.Exit(cli.ExitNotFound)
	}

	next := pipeline.UpdateStage(p.Pipeline, path, func(s *models.Stage) {
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			if name != "" {
				s.Name = name
			}
		}
		if cmd.Flags().Changed("owner") {
			owners, _ := cmd.Flags().GetIntSlice("owner")
			s.Owners = owners
		}
		if cmd.Flags().Changed("start") {
			s.StartAt, _ = cmd.Flags().GetString("start")
		}
		if cmd.Flags().Changed("end") {
			s.EndAt, _ = cmd.Flags().GetString("end")
		}
		if cmd.Flags().Changed("note") {
			s.Note, _ = cmd.Flags().GetString("note")
		}
	})

	if _, err := c.App.Projects.SetPipeline(ctx, p.ID, next); err != nil {
		_ = formatter.Error("STAGE_PERSIST_ERROR", err.Error())
		return err
	}

	node := pipeline.NodeAt(next, path)
	if formatter.Quiet {
		fmt.Println(node.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"stage":   node,
		})
	}
	fmt.Printf("Stage %q updated\n", node.Name)
	return nil
}
