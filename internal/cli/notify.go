package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andy/salesdesk/internal/domain"
	"github.com/spf13/cobra"
)

const visitTimeLayout = "2006-01-02 15:04"

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Send client notifications",
}

var notifyVisitCmd = &cobra.Command{
	Use:   "visit [company name]",
	Short: "Email a client about a scheduled visit",
	Long: `Email a client about a scheduled visit.

The recipient and contact default to the client's details in the directory.

Examples:
  salesdesk notify visit "Acme Corp" --at "2026-11-03 14:30" --type demo
  salesdesk notify visit "Acme Corp" --at "2026-11-03 14:30" --to ops@acme.io --respect-prefs`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		flags := cmd.Flags()

		if respect, _ := flags.GetBool("respect-prefs"); respect {
			prefs, err := appInstance.PreferencesService.Load(ctx)
			if err != nil {
				return reportError(err)
			}
			if !prefs.EmailNotifications {
				fmt.Println("• Email notifications are turned off in your preferences; nothing sent")
				return nil
			}
		}

		at, _ := flags.GetString("at")
		scheduled, err := parseVisitTime(at)
		if err != nil {
			return err
		}

		n := domain.VisitNotification{
			CompanyName: strings.TrimSpace(args[0]),
			ScheduledAt: scheduled,
		}
		n.Recipient, _ = flags.GetString("to")
		n.ContactPerson, _ = flags.GetString("contact")
		n.VisitType, _ = flags.GetString("type")
		n.SalesRep, _ = flags.GetString("rep")
		n.Notes, _ = flags.GetString("notes")

		client, err := appInstance.ClientService.CheckClientExists(ctx, n.CompanyName)
		if err != nil {
			return reportError(err)
		}
		if client != nil {
			n.CompanyName = client.CompanyName
			if n.Recipient == "" {
				n.Recipient = client.Email
			}
			if n.ContactPerson == "" {
				n.ContactPerson = client.ContactPerson
			}
		}
		if n.SalesRep == "" {
			n.SalesRep = salesRepName(ctx)
		}

		res, err := appInstance.NotificationService.SendVisitNotification(ctx, n)
		if err != nil {
			return reportError(err)
		}

		fmt.Printf("✓ Visit notification sent to %s (status %d)\n", n.Recipient, res.Status)
		return nil
	},
}

func init() {
	notifyCmd.AddCommand(notifyVisitCmd)

	notifyVisitCmd.Flags().String("at", "", "Visit time, \"YYYY-MM-DD HH:MM\" in local time (required)")
	notifyVisitCmd.MarkFlagRequired("at")
	notifyVisitCmd.Flags().String("type", "meeting", "Visit type (meeting, demo, call, ...)")
	notifyVisitCmd.Flags().String("to", "", "Recipient email (default: client email)")
	notifyVisitCmd.Flags().String("contact", "", "Contact person (default: client contact)")
	notifyVisitCmd.Flags().String("rep", "", "Sales rep name (default: your profile name)")
	notifyVisitCmd.Flags().String("notes", "", "Notes for the client")
	notifyVisitCmd.Flags().Bool("respect-prefs", false, "Skip sending when email notifications are off")
}

func parseVisitTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(visitTimeLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid visit time %q: use %q", s, "YYYY-MM-DD HH:MM")
	}
	return t, nil
}

// salesRepName prefers the profile name, then the configured user
func salesRepName(ctx context.Context) string {
	if prefs, err := appInstance.PreferencesService.Load(ctx); err == nil && prefs.FullName != "" {
		return prefs.FullName
	}
	return appInstance.Config.User.Name
}
