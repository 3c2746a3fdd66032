package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
)

// WhoamiCmd returns the whoami command
func WhoamiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		RunE:  runWhoami,
	}

	addOutputFlags(cmd)
	return cmd
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)

	c, err := cli.NewCLI(ctx)
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return err
	}
	defer func() { _ = c.Close() }()

	user, err := c.App.Directory.WhoAmI(ctx)
	if err != nil {
		_ = formatter.ErrorWithSuggestion("NOT_AUTHENTICATED", err.Error(),
			"Log in first with 'pipeboard login --login=<name>'")
		os.Exit(cli.ExitError)
	}

	if formatter.Quiet {
		fmt.Println(user.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"user":    user,
		})
	}
	fmt.Printf("%s (id %d)\n", user.DisplayName(), user.ID)
	if user.Email != "" {
		fmt.Printf("  %s\n", user.Email)
	}
	if user.Has2FA {
		fmt.Println("  2FA enabled")
	}
	return nil
}
