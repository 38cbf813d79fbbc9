package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/workstead/signet/pkg/totp"
)

var (
	totpUser    string
	totpIssuer  string
	totpAccount string
	totpSecret  string
)

var totpCmd = &cobra.Command{
	Use:   "totp",
	Short: "TOTP enrollment and debugging helpers",
}

var totpSecretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Derive a user's TOTP secret and enrollment URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		base := os.Getenv("SIGNET_TOTP_SECRET")
		if base == "" {
			return fmt.Errorf("SIGNET_TOTP_SECRET is not set")
		}

		secret := totp.DeriveSecret(base, totpUser)
		account := totpAccount
		if account == "" {
			account = totpUser
		}

		fmt.Printf("secret: %s\n", secret)
		fmt.Printf("url:    %s\n", totp.EnrollmentURL(totpIssuer, account, secret))
		return nil
	},
}

var totpCodeCmd = &cobra.Command{
	Use:   "code",
	Short: "Print the current code for a secret or user",
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := totpSecret
		if secret == "" {
			base := os.Getenv("SIGNET_TOTP_SECRET")
			if base == "" || totpUser == "" {
				return fmt.Errorf("provide --secret, or --user with SIGNET_TOTP_SECRET set")
			}
			secret = totp.DeriveSecret(base, totpUser)
		}

		code, err := totp.GenerateCode(secret, time.Now())
		if err != nil {
			return err
		}
		fmt.Println(code)
		return nil
	},
}

func init() {
	totpSecretCmd.Flags().StringVar(&totpUser, "user", "", "user id to derive the secret for")
	totpSecretCmd.Flags().StringVar(&totpIssuer, "issuer", "Signet", "issuer label for the enrollment URL")
	totpSecretCmd.Flags().StringVar(&totpAccount, "account", "", "account label (defaults to the user id)")
	_ = totpSecretCmd.MarkFlagRequired("user")

	totpCodeCmd.Flags().StringVar(&totpSecret, "secret", "", "base32 TOTP secret")
	totpCodeCmd.Flags().StringVar(&totpUser, "user", "", "user id to derive the secret for")

	totpCmd.AddCommand(totpSecretCmd)
	totpCmd.AddCommand(totpCodeCmd)
	rootCmd.AddCommand(totpCmd)
}
