package stage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/pipeline"
)

// ResetCmd returns the stage reset subcommand
func ResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the pipeline to the default stages",
		Long: `Reset the pipeline to the default stage list with the first stage
active. Renamed built-in stages keep their names; custom stages, statuses,
dates and notes are discarded.`,
		RunE: runReset,
	}

	addProjectFlag(cmd)
	cmd.Flags().Bool("force", false, "Skip confirmation prompt")
	addOutputFlags(cmd)
	return cmd
}

func runReset(cmd *cobra.Command, args []string) error {
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

	force, _ := cmd.Flags().GetBool("force")
	if !force && !formatter.JSON && !formatter.Quiet {
		fmt.Printf("Reset the pipeline of %q, discarding statuses and custom stages? [y/N] ", p.Name)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	next := pipeline.ResetToDefault(p.Pipeline)
	if _, err := c.App.Projects.SetPipeline(ctx, p.ID, next); err != nil {
		_ = formatter.Error("STAGE_PERSIST_ERROR", err.Error())
		return err
	}

	if formatter.Quiet {
		fmt.Println(p.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":  true,
			"pipeline": next,
		})
	}
	fmt.Printf("Pipeline of %q reset to defaults\n", p.Name)
	return nil
}
