// Package cli implements the progresswatch command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "progresswatch [project-root]",
	Short: "Live progress display for autopilot execution",
	Long: `Live progress display for autopilot execution.
Watches .planning/STATE.md and .planning/ralph.log for real-time updates.

project-root is the path to the project root (default: current directory).

Notes:
  - Press Ctrl+C to exit
  - Zero API token consumption (pure file watching)
  - Display updates on file changes and every refresh interval (default 10s)
  - Set NO_COLOR to disable colors`,
	Example: `  progresswatch
  progresswatch /path/to/project
  progresswatch --interval 5s --recent 10`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runWatch,
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render("Error: "+err.Error()))
	}
	return err
}

func init() {
	addWatchFlags(rootCmd)

	rootCmd.AddCommand(versionCmd)
}
