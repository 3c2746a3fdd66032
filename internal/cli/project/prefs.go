package project

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/models"
)

// ViewCmd returns the project view preference subcommand
func ViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [list|cards]",
		Short: "Show or set the projects list view mode",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runView,
	}
	addOutputFlags(cmd)
	return cmd
}

func runView(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)

	c, err := cli.NewCLI(ctx)
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return err
	}
	defer func() { _ = c.Close() }()

	if len(args) == 0 {
		fmt.Println(c.App.Projects.ViewPreference(ctx))
		return nil
	}

	view := args[0]
	if view != models.ViewList && view != models.ViewCards {
		_ = formatter.Error("INVALID_VIEW", fmt.Sprintf("invalid view %q (must be: list, cards)", view))
		os.Exit(cli.ExitValidation)
	}
	if err := c.App.Projects.SetViewPreference(ctx, view); err != nil {
		_ = formatter.Error("PREFERENCE_ERROR", err.Error())
		return err
	}
	if !formatter.Quiet {
		fmt.Printf("View preference set to %s\n", view)
	}
	return nil
}

// SortCmd returns the project sort preference subcommand
func SortCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort [name-asc|name-desc|progress-asc|progress-desc]",
		Short: "Show or set the projects list ordering",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSort,
	}
	addOutputFlags(cmd)
	return cmd
}

func runSort(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)

	c, err := cli.NewCLI(ctx)
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return err
	}
	defer func() { _ = c.Close() }()

	if len(args) == 0 {
		fmt.Println(c.App.Projects.SortPreference(ctx))
		return nil
	}

	order := args[0]
	switch order {
	case "name-asc", "name-desc", "progress-asc", "progress-desc":
	default:
		_ = formatter.Error("INVALID_SORT",
			fmt.Sprintf("invalid sort %q (must be: name-asc, name-desc, progress-asc, progress-desc)", order))
		os.Exit(cli.ExitValidation)
	}
	if err := c.App.Projects.SetSortPreference(ctx, order); err != nil {
		_ = formatter.Error("PREFERENCE_ERROR", err.Error())
		return err
	}
	if !formatter.Quiet {
		fmt.Printf("Sort preference set to %s\n", order)
	}
	return nil
}
