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

// ResetCmd returns the board reset subcommand
func ResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the board to the default columns",
		Long:  `Replace the board with the default three columns, discarding all tasks.`,
		RunE:  runReset,
	}

	cmd.Flags().Bool("force", false, "Skip confirmation prompt")
	addProjectFlag(cmd)
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

	svc, err := boardFor(ctx, cmd, c)
	if err != nil {
		_ = formatter.Error("PROJECT_NOT_FOUND", err.Error())
		os.Exit(cli.ExitNotFound)
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force && !formatter.JSON && !formatter.Quiet {
		fmt.Print("Reset the board, discarding all columns and tasks? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := svc.Reset(ctx); err != nil {
		_ = formatter.Error("BOARD_RESET_ERROR", err.Error())
		return err
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
		})
	}
	if !formatter.Quiet {
		fmt.Println("Board reset to default columns")
	}
	return nil
}
