package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AG66666678/lookcc/internal/config"
)

func newKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the stored API key for each account.",
	}
	cmd.AddCommand(newKeySetCommand(), newKeyRemoveCommand())
	return cmd
}

func newKeySetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <account-id> <api-key>",
		Short: "Store an API key for an account.",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := config.SaveCredential(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Stored key for %s in %s\n", args[0], config.CredentialsPath())
			return nil
		},
	}
}

func newKeyRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <account-id>",
		Aliases: []string{"remove"},
		Short:   "Remove a stored API key.",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := config.DeleteCredential(args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed key for %s\n", args[0])
			return nil
		},
	}
}
