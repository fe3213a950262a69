package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AG66666678/lookcc/internal/appupdate"
	"github.com/AG66666678/lookcc/internal/version"
)

func newVersionCommand() *cobra.Command {
	var checkUpdate bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information.",
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Println("lookcc " + version.String())
			if !checkUpdate {
				return nil
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			res, err := appupdate.Check(ctx, appupdate.CheckOptions{CurrentVersion: version.Version})
			if err != nil {
				return fmt.Errorf("update check: %w", err)
			}
			switch {
			case res.UpdateAvailable:
				fmt.Printf("Update available: %s → %s\n", res.CurrentVersion, res.LatestVersion)
				fmt.Printf("Upgrade with: %s\n", res.UpgradeHint)
			case res.LatestVersion != "":
				fmt.Println("Up to date.")
			default:
				fmt.Println("Update check skipped for dev builds.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkUpdate, "check-update", false, "check GitHub for a newer release")
	return cmd
}
