package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/andy/salesdesk/internal/domain"
	"github.com/andy/salesdesk/internal/export"
	"github.com/andy/salesdesk/internal/service"
	"github.com/andy/salesdesk/internal/validation"
	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
	Long:  `List, search, add, edit, and export clients.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		limit, _ := cmd.Flags().GetInt("limit")

		clients, err := appInstance.ClientService.List(ctx, limit)
		if err != nil {
			return reportError(err)
		}

		printClientTable(clients)
		return nil
	},
}

var clientsSearchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search clients by company name or contact person",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		clients, err := appInstance.ClientService.Search(ctx, args[0])
		if err != nil {
			return reportError(err)
		}

		printClientTable(clients)
		return nil
	},
}

var clientsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := appInstance.ClientService.Get(context.Background(), args[0])
		if err != nil {
			return reportError(err)
		}

		printClient(client)
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add [company name]",
	Short: "Add a client unless one with the same name exists",
	Long: `Add a client. Names are compared ignoring case and surrounding spaces.

If a matching client exists it is returned unchanged by default.
Use --update-if-exists to merge the new details into it, or
--block-duplicates to fail instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		values := clientValuesFromFlags(cmd, map[string]string{
			validation.FieldCompanyName: args[0],
		})

		opts := service.DefaultCreateOptions()
		opts.UpdateIfExists, _ = cmd.Flags().GetBool("update-if-exists")
		opts.SkipDuplicateCheck, _ = cmd.Flags().GetBool("skip-check")
		if block, _ := cmd.Flags().GetBool("block-duplicates"); block {
			opts.ReturnExistingIfDuplicate = false
		}

		res, err := appInstance.ClientService.Submit(ctx, values, opts)
		if err != nil {
			return reportError(err)
		}

		switch res.Outcome {
		case service.OutcomeCreated:
			fmt.Printf("✓ Client created: %s (ID: %s)\n", res.Client.CompanyName, res.Client.ID)
		case service.OutcomeUpdated:
			fmt.Printf("✓ Merged into existing client: %s (ID: %s)\n", res.Client.CompanyName, res.Client.ID)
		case service.OutcomeReturned:
			fmt.Printf("• Client already exists: %s (ID: %s)\n", res.Client.CompanyName, res.Client.ID)
		}
		return nil
	},
}

var clientsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := appInstance.ClientService.Get(ctx, args[0])
		if err != nil {
			return reportError(err)
		}

		values := service.ValuesFromClient(client)
		if cmd.Flags().Changed("name") {
			values[validation.FieldCompanyName], _ = cmd.Flags().GetString("name")
		}
		values = clientValuesFromFlags(cmd, values)

		updated, err := appInstance.ClientService.UpdateClient(ctx, client.ID, values)
		if err != nil {
			return reportError(err)
		}

		fmt.Printf("✓ Client updated: %s\n", updated.CompanyName)
		return nil
	},
}

var clientsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all clients as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		output, _ := cmd.Flags().GetString("output")

		clients, err := appInstance.ClientService.List(ctx, 0)
		if err != nil {
			return reportError(err)
		}

		var w io.Writer = os.Stdout
		if output != "" && output != "-" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}

		if err := export.WriteClientsCSV(w, clients, appInstance.Config.Branding); err != nil {
			return err
		}

		if w != os.Stdout {
			fmt.Printf("✓ Exported %d client(s) to %s\n", len(clients), output)
		}
		return nil
	},
}

// clientFlags maps optional flags onto form fields
var clientFlags = map[string]string{
	"contact":  validation.FieldContactPerson,
	"email":    validation.FieldEmail,
	"phone":    validation.FieldPhone,
	"address":  validation.FieldAddress,
	"industry": validation.FieldIndustry,
	"notes":    validation.FieldNotes,
}

func clientValuesFromFlags(cmd *cobra.Command, values map[string]string) map[string]string {
	for flag, field := range clientFlags {
		if cmd.Flags().Changed(flag) {
			values[field], _ = cmd.Flags().GetString(flag)
		}
	}
	return values
}

func addClientFieldFlags(cmd *cobra.Command) {
	cmd.Flags().String("contact", "", "Contact person")
	cmd.Flags().String("email", "", "Contact email")
	cmd.Flags().String("phone", "", "Contact phone")
	cmd.Flags().String("address", "", "Street address")
	cmd.Flags().String("industry", "", "Industry")
	cmd.Flags().String("notes", "", "Notes about the client")
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsSearchCmd)
	clientsCmd.AddCommand(clientsShowCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsEditCmd)
	clientsCmd.AddCommand(clientsExportCmd)

	// List flags
	clientsListCmd.Flags().Int("limit", 0, "Maximum clients to show (0 for all)")

	// Add flags
	addClientFieldFlags(clientsAddCmd)
	clientsAddCmd.Flags().Bool("update-if-exists", false, "Merge details into a matching client")
	clientsAddCmd.Flags().Bool("block-duplicates", false, "Fail if a matching client exists")
	clientsAddCmd.Flags().Bool("skip-check", false, "Skip the lookup before insert")

	// Edit flags
	clientsEditCmd.Flags().String("name", "", "New company name")
	addClientFieldFlags(clientsEditCmd)

	// Export flags
	clientsExportCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
}

func printClientTable(clients []*domain.Client) {
	if len(clients) == 0 {
		fmt.Println("No clients found")
		return
	}

	fmt.Printf("%-36s  %-30s  %-20s  %-15s\n", "ID", "Company", "Contact", "Industry")
	fmt.Println("--------------------------------------------------------------------------------------------------------")

	for _, c := range clients {
		fmt.Printf("%-36s  %-30s  %-20s  %-15s\n",
			c.ID,
			truncate(c.CompanyName, 30),
			truncate(c.ContactPerson, 20),
			truncate(c.Industry, 15),
		)
	}

	fmt.Printf("\nTotal: %d client(s)\n", len(clients))
}

func printClient(c *domain.Client) {
	fmt.Printf("%s\n", c.CompanyName)
	fmt.Printf("  ID:        %s\n", c.ID)
	printOptional("Contact", c.ContactPerson)
	printOptional("Email", c.Email)
	printOptional("Phone", c.Phone)
	printOptional("Address", c.Address)
	printOptional("Industry", c.Industry)
	printOptional("Notes", c.Notes)
	fmt.Printf("  Added:     %s by %s\n", c.CreatedAt.Local().Format("2006-01-02 15:04"), c.CreatedBy)
	fmt.Printf("  Updated:   %s\n", c.UpdatedAt.Local().Format("2006-01-02 15:04"))
}

func printOptional(label, value string) {
	if value == "" {
		return
	}
	fmt.Printf("  %-10s %s\n", label+":", value)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
