package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AG66666678/lookcc/internal/config"
	"github.com/AG66666678/lookcc/internal/core"
	"github.com/AG66666678/lookcc/internal/probes"
)

const checkTimeout = 2 * time.Minute

func newCheckCommand(cfg config.Config) *cobra.Command {
	var (
		accountID string
		endpoint  string
		apiKey    string
		asJSON    bool
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Probe one account and print its canonical usage record.",
		Long: `Probe a gateway account once and print the normalized usage record.

Pick a configured account with --account, or probe ad hoc credentials with
--endpoint and --api-key. The gateway schema is detected automatically.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			acct, err := resolveCheckAccount(cfg, accountID, endpoint, apiKey)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
			defer cancel()

			detector := core.NewDetector(probes.Ordered())
			det := detector.DetectDetailed(ctx, acct)

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(det.Record)
			}

			printRecord(det.Record)
			if verbose {
				printAttempts(det.Attempts)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "configured account ID to check")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "gateway base URL for an ad hoc check")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key for an ad hoc check")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show each probe attempt")

	return cmd
}

func resolveCheckAccount(cfg config.Config, accountID, endpoint, apiKey string) (core.Account, error) {
	if accountID != "" {
		accounts, err := config.EffectiveAccounts(cfg)
		if err != nil {
			return core.Account{}, err
		}
		for _, a := range accounts {
			if a.ID == accountID {
				return a, nil
			}
		}
		return core.Account{}, fmt.Errorf("no account %q in %s", accountID, config.ConfigPath())
	}

	return core.Account{ID: "adhoc", APIKey: apiKey, Endpoint: endpoint}, nil
}

func printRecord(rec core.UsageRecord) {
	fmt.Printf("Backend:    %s\n", rec.Backend)
	if rec.Error != "" {
		fmt.Printf("Error:      %s\n", rec.Error)
		return
	}
	fmt.Printf("Today:      $%.2f\n", rec.TodayUsed)
	fmt.Printf("This month: $%.2f\n", rec.MonthUsed)
	fmt.Printf("Total used: $%.2f\n", rec.TotalUsed)
	if rec.Unlimited() {
		fmt.Println("Remaining:  no limit")
	} else {
		fmt.Printf("Remaining:  $%.2f of $%.2f\n", rec.Remaining, rec.Total)
	}
}

func printAttempts(attempts []core.Attempt) {
	if len(attempts) == 0 {
		return
	}
	fmt.Println("\nProbe attempts:")
	for _, at := range attempts {
		if at.Err != nil {
			fmt.Printf("  ✗ %-10s %v\n", at.Backend, at.Err)
			continue
		}
		fmt.Printf("  ✓ %-10s matched\n", at.Backend)
	}
}
