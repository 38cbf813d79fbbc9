package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/workstead/signet/internal/config"
	"github.com/workstead/signet/internal/server"
	"github.com/workstead/signet/pkg/attest"
	"github.com/workstead/signet/pkg/identity"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the signature HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}

		verifier, mode, err := buildVerifier(cfg)
		if err != nil {
			return err
		}

		svc := attest.NewService(cfg.TOTPSecret, cfg.SignatureSecret)
		srv := server.New(svc, verifier)

		if cfg.TOTPSecret == "" {
			log.Printf("warning: SIGNET_TOTP_SECRET not set; verify requests will fail")
		}
		if cfg.SignatureSecret == "" {
			log.Printf("warning: SIGNET_SIGNATURE_SECRET not set; all signing will fail")
		}

		log.Printf("signet listening on %s (identity: %s)", cfg.Addr, mode)
		return srv.ListenAndServe(cfg.Addr)
	},
}

// buildVerifier picks the identity verifier from configuration: a remote
// auth endpoint when configured, otherwise local JWT verification.
func buildVerifier(cfg *config.Config) (identity.Verifier, string, error) {
	switch {
	case cfg.AuthURL != "":
		return identity.NewHTTPVerifier(cfg.AuthURL, cfg.AuthAPIKey), "remote", nil
	case cfg.JWKSURL != "":
		return identity.NewJWKSVerifier(cfg.JWKSURL), "jwks", nil
	case cfg.JWTSecret != "":
		return identity.NewHS256Verifier(cfg.JWTSecret), "hs256", nil
	default:
		return nil, "", fmt.Errorf("no identity verifier configured: set SIGNET_AUTH_URL, SIGNET_JWKS_URL or SIGNET_JWT_SECRET")
	}
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides SIGNET_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
