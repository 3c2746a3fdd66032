package stage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/pipeline"
)

// RemoveCmd returns the stage remove subcommand
func RemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <stage>",
		Short: "Remove a custom stage",
		Long:  `Remove a custom stage. Built-in stages cannot be removed; skip them instead.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runRemove,
	}

	addProjectFlag(cmd)
	addOutputFlags(cmd)
	return cmd
}

func runRemove(cmd *cobra.Command, args []string) error {
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
	removed := pipeline.NodeAt(p.Pipeline, path)

	next, err := pipeline.RemoveStage(p.Pipeline, path)
	if err != nil {
		if errors.Is(err, pipeline.ErrBuiltinStage) {
			_ = formatter.ErrorWithSuggestion("BUILTIN_STAGE",
				"built-in stages cannot be removed",
				"Use 'pipeboard stage skip' to take it out of the flow")
			os.Exit(cli.ExitValidation)
		}
		_ = formatter.Error("STAGE_REMOVE_ERROR", err.Error())
		return err
	}

	if _, err := c.App.Projects.SetPipeline(ctx, p.ID, next); err != nil {
		_ = formatter.Error("STAGE_PERSIST_ERROR", err.Error())
		return err
	}

	if formatter.Quiet {
		fmt.Println(removed.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"removed": removed.ID,
		})
	}
	fmt.Printf("Stage %q removed\n", removed.Name)
	return nil
}
