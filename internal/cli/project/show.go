package project

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/cli/styles"
	"github.com/tranvq/pipeboard/internal/directory"
	"github.com/tranvq/pipeboard/internal/pipeline"
)

// ShowCmd returns the project show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <project>",
		Short: "Show one project with its pipeline progress",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	addOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
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

	prog := pipeline.ComputeProgress(p.Pipeline)

	if formatter.Quiet {
		fmt.Println(p.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":  true,
			"project":  p,
			"progress": prog,
		})
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(p.Name) + "\n")
	b.WriteString(styles.SubtitleStyle.Render(p.ID) + "\n")
	if p.Description != "" {
		b.WriteString(p.Description + "\n")
	}
	b.WriteString(fmt.Sprintf("\n%s %d%% (%d/%d done, %d skipped)\n",
		styles.LabelStyle.Render("Progress:"),
		prog.Pct, prog.Done, prog.Total-prog.Skipped, prog.Skipped))

	if len(p.Participants) > 0 {
		names := participantNames(ctx, c, p.Participants)
		b.WriteString(styles.LabelStyle.Render("Participants:") + " " +
			strings.Join(names, ", ") + "\n")
	}
	fmt.Println(styles.RenderCard(strings.TrimRight(b.String(), "\n")))
	return nil
}

// participantNames resolves user ids through the directory, degrading to
// "User <id>" when it is unreachable.
func participantNames(ctx context.Context, c *cli.CLI, ids []int) []string {
	var lookup map[int]string
	if users, err := c.App.Directory.ListUsers(ctx, 1, 100); err == nil {
		lookup = directory.ResolveNames(users)
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = directory.NameOrID(lookup, id)
	}
	return names
}
