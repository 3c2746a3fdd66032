package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli/auth"
	"github.com/tranvq/pipeboard/internal/cli/chat"
	"github.com/tranvq/pipeboard/internal/cli/column"
	"github.com/tranvq/pipeboard/internal/cli/profile"
	"github.com/tranvq/pipeboard/internal/cli/project"
	"github.com/tranvq/pipeboard/internal/cli/stage"
	"github.com/tranvq/pipeboard/internal/cli/task"
)

var rootCmd = &cobra.Command{
	Use:   "pipeboard",
	Short: "Pipeboard - project pipelines and kanban boards in the terminal",
	Long: `Pipeboard tracks projects through a staged delivery pipeline and keeps
a kanban board per project, stored locally in SQLite.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(project.ProjectCmd())
	rootCmd.AddCommand(stage.StageCmd())
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(column.ColumnCmd())
	rootCmd.AddCommand(chat.ChatCmd())
	rootCmd.AddCommand(profile.ProfileCmd())
	rootCmd.AddCommand(auth.LoginCmd())
	rootCmd.AddCommand(auth.WhoamiCmd())
	rootCmd.AddCommand(auth.UsersCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
