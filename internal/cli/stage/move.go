package stage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/pipeline"
)

// MoveCmd returns the stage move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <stage>",
		Short: "Swap a stage with its neighbor",
		Long: `Swap a stage with the sibling above or below it. Moves past either
end of the group do nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: runMove,
	}

	addProjectFlag(cmd)
	cmd.Flags().Bool("up", false, "Swap with the previous sibling")
	cmd.Flags().Bool("down", false, "Swap with the next sibling")
	addOutputFlags(cmd)
	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)

	up, _ := cmd.Flags().GetBool("up")
	down, _ := cmd.Flags().GetBool("down")
	if up == down {
		_ = formatter.Error("USAGE", "exactly one of --up or --down is required")
		os.Exit(cli.ExitUsage)
	}
	dir := pipeline.Up
	if down {
		dir = pipeline.Down
	}

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

	next, newPath := pipeline.MoveSibling(p.Pipeline, path, dir)
	if _, err := c.App.Projects.SetPipeline(ctx, p.ID, next); err != nil {
		_ = formatter.Error("STAGE_PERSIST_ERROR", err.Error())
		return err
	}

	node := pipeline.NodeAt(next, newPath)
	if formatter.Quiet {
		fmt.Println(node.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"stage":   node,
			"path":    newPath,
		})
	}
	if newPath.Equal(path) {
		fmt.Printf("Stage %q is already at the edge of its group\n", node.Name)
	} else {
		fmt.Printf("Stage %q moved to position %s\n", node.Name, pathString(newPath))
	}
	return nil
}
