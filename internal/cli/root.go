package cli

import (
	"github.com/andy/salesdesk/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "salesdesk",
	Short: "A terminal CRM for sales reps",
	Long: `Salesdesk keeps a duplicate-free client directory, your contact
preferences, and sends visit notifications.

By default, running salesdesk without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(tuiCmd)
}
