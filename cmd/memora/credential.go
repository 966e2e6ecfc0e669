package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DurishettyAnirudh/memora/internal/credential"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored credentials",
}

var setTokenCmd = &cobra.Command{
	Use:   "set-token <token>",
	Short: "Store a bearer token for an authenticated inference gateway",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := credential.Set(credential.KeyOracleToken, args[0]); err != nil {
			return err
		}
		fmt.Println("Token stored.")
		return nil
	},
}

var deleteTokenCmd = &cobra.Command{
	Use:   "delete-token",
	Short: "Remove the stored inference gateway token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := credential.Delete(credential.KeyOracleToken); err != nil {
			return err
		}
		fmt.Println("Token removed.")
		return nil
	},
}

func init() {
	authCmd.AddCommand(setTokenCmd)
	authCmd.AddCommand(deleteTokenCmd)
	rootCmd.AddCommand(authCmd)
}
