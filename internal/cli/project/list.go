package project

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/cli/styles"
	"github.com/tranvq/pipeboard/internal/models"
	"github.com/tranvq/pipeboard/internal/pipeline"
)

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		RunE:  runList,
	}

	cmd.Flags().String("sort", "", "Ordering: name-asc, name-desc, progress-asc, progress-desc (defaults to the stored preference)")
	addOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)

	c, err := cli.NewCLI(ctx)
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return err
	}
	defer func() { _ = c.Close() }()

	list, err := c.App.Projects.List(ctx)
	if err != nil {
		_ = formatter.Error("PROJECT_LIST_ERROR", err.Error())
		return err
	}

	order, _ := cmd.Flags().GetString("sort")
	if order == "" {
		order = c.App.Projects.SortPreference(ctx)
	}
	sortProjects(list, order)

	if formatter.Quiet {
		for _, p := range list {
			fmt.Println(p.ID)
		}
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":  true,
			"projects": list,
		})
	}

	if len(list) == 0 {
		fmt.Println("No projects. Create one with 'pipeboard project create --name=...'")
		return nil
	}
	for _, p := range list {
		prog := pipeline.ComputeProgress(p.Pipeline)
		fmt.Printf("%s  %s  %s\n",
			styles.SubtitleStyle.Render(p.ID),
			styles.TitleStyle.Render(p.Name),
			fmt.Sprintf("%d%%", prog.Pct))
	}
	return nil
}

// sortProjects orders the list in place. Progress orders compute the
// pipeline percentage; legacy records without a pipeline count as zero.
func sortProjects(list []*models.Project, order string) {
	pct := func(p *models.Project) int {
		if !p.Migrated() {
			return 0
		}
		return pipeline.ComputeProgress(p.Pipeline).Pct
	}
	sort.SliceStable(list, func(i, j int) bool {
		switch order {
		case "name-desc":
			return strings.ToLower(list[i].Name) > strings.ToLower(list[j].Name)
		case "progress-asc":
			return pct(list[i]) < pct(list[j])
		case "progress-desc":
			return pct(list[i]) > pct(list[j])
		default: // name-asc
			return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
		}
	})
}
