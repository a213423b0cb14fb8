package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"hospital-records/cmd/bootstrap"
	"hospital-records/internal/domain/entity"

	"github.com/spf13/cobra"
)

type sessionFlags struct {
	configPath string
	username   string
	password   string
}

func main() {
	flags := &sessionFlags{}

	rootCmd := &cobra.Command{
		Use:   "hospital-records",
		Short: "Session-scoped clinical record manager",
	}
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to an env-format config file (default .env)")
	rootCmd.PersistentFlags().StringVarP(&flags.username, "username", "u", "admin", "account to act as")
	rootCmd.PersistentFlags().StringVarP(&flags.password, "password", "p", "admin123", "password for --username")

	rootCmd.AddCommand(statsCmd(flags))
	rootCmd.AddCommand(medicinesCmd(flags))
	rootCmd.AddCommand(integrityCmd(flags))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openSession builds a fresh seeded session and logs in as the requested user.
func openSession(ctx context.Context, flags *sessionFlags) (*bootstrap.App, context.Context, error) {
	app, err := bootstrap.New(flags.configPath)
	if err != nil {
		return nil, nil, err
	}
	authCtx, err := app.Login(ctx, flags.username, flags.password)
	if err != nil {
		return nil, nil, fmt.Errorf("login as %s: %w", flags.username, err)
	}
	return app, authCtx, nil
}

func statsCmd(flags *sessionFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print dashboard counts for the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, err := openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			stats, err := app.Dashboard.Stats(ctx)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), stats)
		},
	}
}

func medicinesCmd(flags *sessionFlags) *cobra.Command {
	var category, search string
	cmd := &cobra.Command{
		Use:   "medicines",
		Short: "List the medicine inventory with stock status",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, err := openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			meds, err := app.Medicines.List(ctx, &entity.MedicineFilter{Category: category, Search: search})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tQTY\tSTOCK\tEXPIRY")
			for _, m := range meds {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
					m.ID, m.Name, m.Category, m.Price.StringFixed(2), m.Quantity, m.StockStatus, m.Expiry)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only show this category")
	cmd.Flags().StringVar(&search, "search", "", "match name, category or manufacturer")
	return cmd
}

func integrityCmd(flags *sessionFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "integrity",
		Short: "Report references that point at missing records (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, err := openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			report, err := app.Dashboard.IntegrityReport(ctx)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
