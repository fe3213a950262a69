package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AG66666678/lookcc/internal/config"
	"github.com/AG66666678/lookcc/internal/detect"
)

func newDetectCommand() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Scan the environment for gateway credentials.",
		RunE: func(_ *cobra.Command, _ []string) error {
			result := detect.AutoDetect()
			fmt.Print(result.Summary())

			if save && len(result.Accounts) > 0 {
				if err := config.SaveAutoDetected(result.Accounts); err != nil {
					return err
				}
				fmt.Printf("Saved to %s\n", config.ConfigPath())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "persist detected accounts to the config file")
	return cmd
}
