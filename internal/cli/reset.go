package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset data in the database",
	Long: `Reset data in the database.

Examples:
  salesdesk reset notifications   # Clear the notification log
  salesdesk reset all             # Wipe clients, preferences and the notification log`,
}

var resetNotificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Delete the notification log",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete the entire notification log. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := clearTables("notification_logs"); err != nil {
			return err
		}

		fmt.Println("The notification log has been cleared.")
		return nil
	},
}

var resetAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Delete ALL data: clients, preferences, notification log",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL data (clients, preferences, notification log). Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := clearTables("notification_logs", "preferences", "clients"); err != nil {
			return err
		}

		fmt.Println("All data has been deleted.")
		return nil
	},
}

func clearTables(tables ...string) error {
	for _, table := range tables {
		if _, err := appInstance.DB.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.AddCommand(resetNotificationsCmd)
	resetCmd.AddCommand(resetAllCmd)
}
