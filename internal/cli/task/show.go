package task

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/cli/styles"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task with its comments, files, links and activity",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	addProjectFlag(cmd)
	addOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)
	taskID := args[0]

	c, err := cli.NewCLI(ctx)
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return err
	}
	defer func() { _ = c.Close() }()

	svc, projectID, err := boardFor(ctx, cmd, c)
	if err != nil {
		_ = formatter.Error("PROJECT_NOT_FOUND", err.Error())
		os.Exit(cli.ExitNotFound)
	}

	cols, err := svc.Load(ctx)
	if err != nil {
		_ = formatter.Error("BOARD_LOAD_ERROR", err.Error())
		return err
	}
	col, t := findTask(cols, taskID)
	if t == nil {
		_ = formatter.ErrorWithSuggestion("TASK_NOT_FOUND",
			fmt.Sprintf("task %q not found", taskID),
			"Use 'pipeboard task list' to see task ids")
		os.Exit(cli.ExitNotFound)
	}

	side := c.App.SideChannelsFor(projectID)
	comments, _ := side.Comments(ctx, taskID)
	files, _ := side.Files(ctx, taskID)
	relations, _ := side.Relations(ctx, taskID)
	activity, _ := side.Activity(ctx, taskID)

	if formatter.Quiet {
		fmt.Println(t.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":   true,
			"task":      t,
			"column":    col.ID,
			"comments":  comments,
			"files":     files,
			"relations": relations,
			"activity":  activity,
		})
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(t.Title) + "\n")
	b.WriteString(styles.SubtitleStyle.Render(t.ID) + "\n\n")
	b.WriteString(styles.LabelStyle.Render("Column:") + " " + col.Title + "\n")
	b.WriteString(styles.LabelStyle.Render("Status:") + " " + t.Status + "\n")
	b.WriteString(styles.LabelStyle.Render("Type:") + " " + t.Type + "\n")
	b.WriteString(styles.LabelStyle.Render("Priority:") + " " + t.Priority + "\n")
	if t.Assignee != "" || t.AssigneeID != 0 {
		assignee := t.Assignee
		if assignee == "" {
			assignee = fmt.Sprintf("User %d", t.AssigneeID)
		}
		b.WriteString(styles.LabelStyle.Render("Assignee:") + " " + assignee + "\n")
	}
	if len(t.Tags) > 0 {
		b.WriteString(styles.LabelStyle.Render("Tags:") + " " + strings.Join(t.Tags, ", ") + "\n")
	}
	if t.StartAt != "" || t.EndAt != "" {
		b.WriteString(styles.LabelStyle.Render("Window:") + " " + t.StartAt + " .. " + t.EndAt + "\n")
	}

	if t.Description != "" {
		b.WriteString("\n" + renderMarkdown(t.Description))
	}

	if len(comments) > 0 {
		b.WriteString("\n" + styles.LabelStyle.Render("Comments") + "\n")
		for _, cm := range comments {
			b.WriteString(fmt.Sprintf("  %s %s: %s\n",
				styles.SubtitleStyle.Render(cm.At), cm.By, cm.Text))
		}
	}
	if len(files) > 0 {
		b.WriteString("\n" + styles.LabelStyle.Render("Files") + "\n")
		for _, f := range files {
			b.WriteString(fmt.Sprintf("  %s (%d bytes)\n", f.Name, f.Size))
		}
	}
	if len(relations) > 0 {
		b.WriteString("\n" + styles.LabelStyle.Render("Links") + "\n")
		for _, rel := range relations {
			b.WriteString(fmt.Sprintf("  %s -> %s\n", rel.Kind, rel.TargetID))
		}
	}
	if len(activity) > 0 {
		b.WriteString("\n" + styles.LabelStyle.Render("Activity") + "\n")
		for _, entry := range activity {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				styles.SubtitleStyle.Render(entry.At), entry.Type, entry.Detail))
		}
	}

	fmt.Println(styles.RenderCard(strings.TrimRight(b.String(), "\n")))
	return nil
}

// renderMarkdown renders a task description as terminal markdown, falling
// back to the raw text when rendering fails.
func renderMarkdown(text string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(styles.CardWidth-6),
	)
	if err != nil {
		return text + "\n"
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text + "\n"
	}
	return out
}
