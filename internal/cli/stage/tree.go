package stage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/cli/styles"
	"github.com/tranvq/pipeboard/internal/models"
	"github.com/tranvq/pipeboard/internal/pipeline"
)

// TreeCmd returns the stage tree subcommand
func TreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the pipeline tree with progress",
		RunE:  runTree,
	}

	addProjectFlag(cmd)
	addOutputFlags(cmd)
	return cmd
}

func runTree(cmd *cobra.Command, args []string) error {
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

	prog := pipeline.ComputeProgress(p.Pipeline)

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":  true,
			"pipeline": p.Pipeline,
			"progress": prog,
		})
	}

	fmt.Printf("%s  %d%% (%d done, %d skipped, %d stages)\n",
		styles.TitleStyle.Render(p.Name), prog.Pct, prog.Done, prog.Skipped, prog.Total)
	printTree(p.Pipeline, nil)
	return nil
}

// printTree renders the forest with dotted index paths, one node per line.
func printTree(nodes []*models.Stage, prefix pipeline.Path) {
	for i, n := range nodes {
		path := append(prefix.Clone(), i)
		indent := strings.Repeat("  ", len(path)-1)
		line := fmt.Sprintf("%s%s %s %s",
			indent,
			styles.RenderStageStatus(n.Status),
			styles.SubtitleStyle.Render(pathString(path)),
			n.Name)
		if !n.IsLeaf() {
			status := pipeline.DerivedStatus(n)
			line += styles.SubtitleStyle.Render(fmt.Sprintf("  (group: %s)", statusWord(status)))
		}
		if n.Note != "" {
			line += styles.SubtitleStyle.Render("  # " + n.Note)
		}
		fmt.Println(line)
		printTree(n.Children, path)
	}
}

func pathString(p pipeline.Path) string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = fmt.Sprint(idx)
	}
	return strings.Join(parts, ".")
}

func statusWord(s models.StageStatus) string {
	if s == models.StageUnset {
		return "pending"
	}
	return string(s)
}
