package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"internship-engine/internal/secrets"
)

var secretCommand = &cobra.Command{
	Use:   "secret",
	Short: "Manage API credentials in the OS keychain",
	Long: fmt.Sprintf(`Store search provider credentials in the OS keychain instead of the
environment. Recognized names: %s, %s, %s.`,
		secrets.EnvBraveAPIKey, secrets.EnvGoogleAPIKey, secrets.EnvGoogleCSEID),
}

var secretSetCommand = &cobra.Command{
	Use:   "set NAME VALUE",
	Short: "Store a credential in the keychain",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		if err := secrets.Set(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("stored %s\n", args[0])
		return nil
	},
}

var secretDeleteCommand = &cobra.Command{
	Use:   "delete NAME",
	Short: "Remove a credential from the keychain",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if err := secrets.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

func init() {
	secretCommand.AddCommand(secretSetCommand, secretDeleteCommand)
	rootCmd.AddCommand(secretCommand)
}
