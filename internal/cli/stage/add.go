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

// AddCmd returns the stage add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Insert a custom stage",
		Long: `Insert a custom stage next to an existing one, or as a child.

Examples:
  # Insert after the design stage
  pipeboard stage add --project=demo --name="Design review" --after=design

  # Insert before by index path
  pipeboard stage add --project=demo --name="Kickoff" --before=0

  # Add a sub-stage, turning the target into a group
  pipeboard stage add --project=demo --name="Wiring" --child-of=install
`,
		RunE: runAdd,
	}

	addProjectFlag(cmd)
	cmd.Flags().String("name", "", "Stage name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().String("before", "", "Insert before this stage (id or path)")
	cmd.Flags().String("after", "", "Insert after this stage (id or path)")
	cmd.Flags().String("child-of", "", "Append as child of this stage (id or path)")
	addOutputFlags(cmd)

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)

	name, _ := cmd.Flags().GetString("name")
	before, _ := cmd.Flags().GetString("before")
	after, _ := cmd.Flags().GetString("after")
	childOf, _ := cmd.Flags().GetString("child-of")

	set := 0
	for _, v := range []string{before, after, childOf} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		_ = formatter.Error("USAGE", "exactly one of --before, --after or --child-of is required")
		os.Exit(cli.ExitUsage)
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

	anchorRef := before
	pos := pipeline.Before
	if after != "" {
		anchorRef = after
		pos = pipeline.After
	}
	if childOf != "" {
		anchorRef = childOf
	}

	anchor, err := cli.FindStagePath(p.Pipeline, anchorRef)
	if err != nil {
		_ = formatter.ErrorWithSuggestion("STAGE_NOT_FOUND", err.Error(),
			"Use 'pipeboard stage tree --project="+p.ID+"' to see stage ids and paths")
		os.Exit(cli.ExitNotFound)
	}

	tree := p.Pipeline
	var newPath pipeline.Path
	if childOf != "" {
		tree, err = pipeline.AddChild(tree, anchor, name)
		if err == nil {
			parent := pipeline.NodeAt(tree, anchor)
			newPath = append(anchor.Clone(), len(parent.Children)-1)
		}
	} else {
		tree, newPath, err = pipeline.InsertStage(tree, anchor, pos, name)
	}
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyName) {
			_ = formatter.Error("EMPTY_NAME", "stage name must not be blank")
			os.Exit(cli.ExitValidation)
		}
		_ = formatter.Error("STAGE_ADD_ERROR", err.Error())
		return err
	}

	if _, err := c.App.Projects.SetPipeline(ctx, p.ID, tree); err != nil {
		_ = formatter.Error("STAGE_PERSIST_ERROR", err.Error())
		return err
	}

	node := pipeline.NodeAt(tree, newPath)
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
	fmt.Printf("Stage %q added (id: %s)\n", node.Name, node.ID)
	return nil
}
