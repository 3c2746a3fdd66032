package column

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/cli/styles"
)

// ListCmd returns the column list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the board's columns",
		RunE:  runList,
	}

	addProjectFlag(cmd)
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

	svc, err := boardFor(ctx, cmd, c)
	if err != nil {
		_ = formatter.Error("PROJECT_NOT_FOUND", err.Error())
		os.Exit(cli.ExitNotFound)
	}

	cols, err := svc.Load(ctx)
	if err != nil {
		_ = formatter.Error("BOARD_LOAD_ERROR", err.Error())
		return err
	}

	if formatter.Quiet {
		for _, col := range cols {
			fmt.Println(col.ID)
		}
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"columns": cols,
		})
	}
	for _, col := range cols {
		fmt.Printf("%s  %s  %d tasks\n",
			styles.SubtitleStyle.Render(col.ID),
			styles.RenderColumnChip(col),
			len(col.Tasks))
	}
	return nil
}
