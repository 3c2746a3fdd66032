package stage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/models"
	"github.com/tranvq/pipeboard/internal/pipeline"
)

// StartCmd returns the stage start subcommand
func StartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start <stage>",
		Short: "Mark a leaf stage in progress",
		Long: `Mark a leaf stage in progress.

The stage is addressed by id or dotted index path (e.g. "design" or "3.0.1").
Activation is refused when an earlier stage is still open or another stage is
already in progress.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransition(cmd, args[0], models.StageInProgress)
		},
	}
	addProjectFlag(cmd)
	addOutputFlags(cmd)
	return cmd
}

// DoneCmd returns the stage done subcommand
func DoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <stage>",
		Short: "Mark a leaf stage done",
		Long: `Mark a leaf stage done.

The next eligible stage is activated automatically.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransition(cmd, args[0], models.StageDone)
		},
	}
	addProjectFlag(cmd)
	addOutputFlags(cmd)
	return cmd
}

// SkipCmd returns the stage skip subcommand
func SkipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skip <stage>",
		Short: "Skip a stage or stage group",
		Long: `Skip a stage. Skipping a group skips all of its descendants for
gating and progress purposes. The next eligible stage is activated
automatically.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransition(cmd, args[0], models.StageSkipped)
		},
	}
	addProjectFlag(cmd)
	addOutputFlags(cmd)
	return cmd
}

func runTransition(cmd *cobra.Command, ref string, status models.StageStatus) error {
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

	path, err := cli.FindStagePath(p.Pipeline, ref)
	if err != nil {
		_ = formatter.ErrorWithSuggestion("STAGE_NOT_FOUND", err.Error(),
			"Use 'pipeboard stage tree --project="+p.ID+"' to see stage ids and paths")
		os.Exit(cli.ExitNotFound)
	}

	next, err := pipeline.SetStatus(p.Pipeline, path, status)
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrNotLeaf):
			_ = formatter.ErrorWithSuggestion("NOT_A_LEAF",
				"only leaf stages can be started or completed",
				"Skip the group instead, or address one of its child stages")
			os.Exit(cli.ExitValidation)
		case errors.Is(err, pipeline.ErrGated):
			_ = formatter.ErrorWithSuggestion("STAGE_GATED",
				"an earlier stage is still open or another stage is in progress",
				"Finish or skip the stages before this one first")
			os.Exit(cli.ExitGated)
		}
		_ = formatter.Error("STAGE_UPDATE_ERROR", err.Error())
		return err
	}

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
	fmt.Printf("Stage %q is now %s\n", node.Name, status)
	if active := activeLeaf(next); active != nil && active.ID != node.ID {
		fmt.Printf("Active stage: %s\n", active.Name)
	}
	return nil
}

// activeLeaf returns the currently in-progress leaf, if any.
func activeLeaf(tree []*models.Stage) *models.Stage {
	for _, leaf := range pipeline.Leaves(tree) {
		if leaf.Stage.Status == models.StageInProgress {
			return leaf.Stage
		}
	}
	return nil
}
