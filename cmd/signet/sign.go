package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/workstead/signet/pkg/attest"
)

var (
	signUser        string
	signPayload     string
	signPayloadFile string
	signSecret      string
	signSignedAt    string
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a payload offline with a locally held secret",
	Long: `Computes an attestation without the HTTP service, using the same
code path as the server's "sign" action. The secret comes from --secret or
SIGNET_SIGNATURE_SECRET.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := signSecret
		if secret == "" {
			secret = os.Getenv("SIGNET_SIGNATURE_SECRET")
		}

		payload, err := loadPayload()
		if err != nil {
			return err
		}

		svc := attest.NewService("", secret)
		att, err := svc.Sign(signUser, signSignedAt, payload)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(att, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func loadPayload() (any, error) {
	var raw []byte
	switch {
	case signPayloadFile != "":
		data, err := os.ReadFile(signPayloadFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload file: %w", err)
		}
		raw = data
	case signPayload != "":
		raw = []byte(signPayload)
	default:
		return nil, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("payload is not valid JSON: %w", err)
	}
	return v, nil
}

func init() {
	signCmd.Flags().StringVar(&signUser, "user", "", "user id the attestation is issued for")
	signCmd.Flags().StringVar(&signPayload, "payload", "", "inline JSON payload")
	signCmd.Flags().StringVar(&signPayloadFile, "payload-file", "", "path to a JSON payload file")
	signCmd.Flags().StringVar(&signSecret, "secret", "", "signature secret (defaults to SIGNET_SIGNATURE_SECRET)")
	signCmd.Flags().StringVar(&signSignedAt, "signed-at", "", "override the signing timestamp (ISO-8601)")
	_ = signCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(signCmd)
}
