// Package main is the entry point for the signet CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "signet",
	Short: "Signet attestation service CLI",
	Long: `Signet issues verifiable attestations: TOTP-gated HMAC signatures
over canonicalized JSON payloads. This CLI runs the HTTP service and
provides offline signing and TOTP enrollment helpers.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
