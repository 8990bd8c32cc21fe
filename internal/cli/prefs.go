package cli

import (
	"context"
	"fmt"

	"github.com/andy/salesdesk/internal/domain"
	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "View and change your profile and notification preferences",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, err := appInstance.PreferencesService.Load(context.Background())
		if err != nil {
			return reportError(err)
		}

		printPreferences(prefs)
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update preferences",
	Long: `Update preferences. Only the flags you pass are changed.

Examples:
  salesdesk prefs set --name "Dana Scully" --title "Account Executive"
  salesdesk prefs set --weekly-reports=true --new-lead-alerts=false`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		prefs, err := appInstance.PreferencesService.Load(ctx)
		if err != nil {
			return reportError(err)
		}

		flags := cmd.Flags()
		for flag, dst := range map[string]*string{
			"name":  &prefs.FullName,
			"email": &prefs.Email,
			"phone": &prefs.Phone,
			"title": &prefs.Title,
		} {
			if flags.Changed(flag) {
				*dst, _ = flags.GetString(flag)
			}
		}
		for flag, dst := range map[string]*bool{
			"email-notifications": &prefs.EmailNotifications,
			"visit-reminders":     &prefs.VisitReminders,
			"weekly-reports":      &prefs.WeeklyReports,
			"new-lead-alerts":     &prefs.NewLeadAlerts,
		} {
			if flags.Changed(flag) {
				*dst, _ = flags.GetBool(flag)
			}
		}

		if err := appInstance.PreferencesService.Save(ctx, prefs); err != nil {
			return reportError(err)
		}

		fmt.Println("✓ Preferences saved")
		return nil
	},
}

func init() {
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetCmd)

	prefsSetCmd.Flags().String("name", "", "Full name")
	prefsSetCmd.Flags().String("email", "", "Email address")
	prefsSetCmd.Flags().String("phone", "", "Phone number")
	prefsSetCmd.Flags().String("title", "", "Job title")
	prefsSetCmd.Flags().Bool("email-notifications", true, "Receive email notifications")
	prefsSetCmd.Flags().Bool("visit-reminders", true, "Receive visit reminders")
	prefsSetCmd.Flags().Bool("weekly-reports", false, "Receive weekly reports")
	prefsSetCmd.Flags().Bool("new-lead-alerts", true, "Receive new lead alerts")
}

func printPreferences(p *domain.Preferences) {
	fmt.Println("Profile")
	fmt.Printf("  Name:   %s\n", orDash(p.FullName))
	fmt.Printf("  Email:  %s\n", orDash(p.Email))
	fmt.Printf("  Phone:  %s\n", orDash(p.Phone))
	fmt.Printf("  Title:  %s\n", orDash(p.Title))
	fmt.Println()
	fmt.Println("Notifications")
	fmt.Printf("  Email notifications:  %s\n", onOff(p.EmailNotifications))
	fmt.Printf("  Visit reminders:      %s\n", onOff(p.VisitReminders))
	fmt.Printf("  Weekly reports:       %s\n", onOff(p.WeeklyReports))
	fmt.Printf("  New lead alerts:      %s\n", onOff(p.NewLeadAlerts))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
