package task

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
)

// LinkCmd returns the task link subcommand
func LinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link <task-id>",
		Short: "Link a task to another task, or list links",
		Long: `Record a relation from this task to another. Without --to the
existing links are listed.

Examples:
  pipeboard task link abc123 --to=def456 --kind=blocks
  pipeboard task link abc123 --to=def456 --kind=relates --note="same vendor"
  pipeboard task link abc123
`,
		Args: cobra.ExactArgs(1),
		RunE: runLink,
	}

	cmd.Flags().String("to", "", "Target task id")
	cmd.Flags().String("kind", "relates", "Relation kind (relates, blocks, duplicate, ...)")
	cmd.Flags().String("note", "", "Optional note")
	addProjectFlag(cmd)
	addOutputFlags(cmd)
	return cmd
}

func runLink(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)
	taskID := args[0]

	c, err := cli.NewCLI(ctx)
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return err
	}
	defer func() { _ = c.Close() }()

	_, projectID, err := boardFor(ctx, cmd, c)
	if err != nil {
		_ = formatter.Error("PROJECT_NOT_FOUND", err.Error())
		os.Exit(cli.ExitNotFound)
	}
	side := c.App.SideChannelsFor(projectID)

	to, _ := cmd.Flags().GetString("to")
	if to == "" {
		relations, err := side.Relations(ctx, taskID)
		if err != nil {
			_ = formatter.Error("LINK_LIST_ERROR", err.Error())
			return err
		}
		if formatter.JSON {
			return json.NewEncoder(os.Stdout).Encode(map[string]any{
				"success":   true,
				"relations": relations,
			})
		}
		for _, rel := range relations {
			line := fmt.Sprintf("%s -> %s", rel.Kind, rel.TargetID)
			if rel.Note != "" {
				line += "  (" + rel.Note + ")"
			}
			fmt.Println(line)
		}
		return nil
	}

	kind, _ := cmd.Flags().GetString("kind")
	note, _ := cmd.Flags().GetString("note")

	rel, err := side.AddRelation(ctx, taskID, kind, to, note)
	if err != nil {
		_ = formatter.Error("LINK_ADD_ERROR", err.Error())
		return err
	}

	if formatter.Quiet {
		fmt.Println(rel.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":  true,
			"relation": rel,
		})
	}
	fmt.Printf("Task %s now %s %s\n", taskID, kind, to)
	return nil
}
