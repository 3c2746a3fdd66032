package column

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
)

// DeleteCmd returns the column delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <column>",
		Short: "Delete a column and the tasks in it",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}

	cmd.Flags().Bool("force", false, "Skip confirmation prompt")
	addProjectFlag(cmd)
	addOutputFlags(cmd)
	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
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
	col := findColumnByRef(cols, args[0])
	if col == nil {
		_ = formatter.ErrorWithSuggestion("COLUMN_NOT_FOUND",
			fmt.Sprintf("column %q not found", args[0]),
			"Use 'pipeboard column list' to see available columns")
		os.Exit(cli.ExitNotFound)
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force && !formatter.JSON && !formatter.Quiet && len(col.Tasks) > 0 {
		fmt.Printf("Delete column %q with %d tasks? [y/N] ", col.Title, len(col.Tasks))
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := svc.DeleteColumn(ctx, col.ID); err != nil {
		_ = formatter.Error("COLUMN_DELETE_ERROR", err.Error())
		return err
	}

	if formatter.Quiet {
		fmt.Println(col.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"deleted": col.ID,
		})
	}
	fmt.Printf("Column %q deleted\n", col.Title)
	return nil
}
