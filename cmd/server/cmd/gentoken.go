package cmd

import (
	"fmt"

	"github.com/gatherly/server/internal/auth"
	"github.com/gatherly/server/internal/config"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	genTokenUserID   string
	genTokenUsername string
	genTokenRefresh  bool
)

var genTokenCmd = &cobra.Command{
	Use:   "gentoken",
	Short: "Generate a JWT for local testing",
	Long: `Generate a signed JWT for a user without going through the token endpoint.

Reads JWT_SECRET (and the other JWT_* variables) from the environment, so the
token is accepted by a server running with the same configuration.

Examples:
  # Access token for a user
  server gentoken --user-id 7c9e6679-7425-40de-944b-e07fc1f90ae7 --username alice

  # Refresh token instead
  server gentoken --user-id 7c9e6679-7425-40de-944b-e07fc1f90ae7 --refresh`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenToken(cmd)
	},
}

func init() {
	genTokenCmd.Flags().StringVar(&genTokenUserID, "user-id", "", "user id placed in the token subject (required)")
	genTokenCmd.Flags().StringVar(&genTokenUsername, "username", "", "username claim")
	genTokenCmd.Flags().BoolVar(&genTokenRefresh, "refresh", false, "generate a refresh token instead of an access token")
	_ = genTokenCmd.MarkFlagRequired("user-id")
}

func runGenToken(cmd *cobra.Command) error {
	authCfg, err := config.LoadAuth()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if _, err := uuid.Parse(genTokenUserID); err != nil {
		return fmt.Errorf("user-id must be a UUID: %w", err)
	}

	manager := auth.NewJWTManager(authCfg.JWTSecret, authCfg.AccessExpiry, authCfg.RefreshExpiry, authCfg.Issuer)

	var token string
	if genTokenRefresh {
		token, err = manager.GenerateRefresh(genTokenUserID, genTokenUsername)
	} else {
		token, err = manager.GenerateAccess(genTokenUserID, genTokenUsername)
	}
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, token)
	if !genTokenRefresh {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Test with:")
		fmt.Fprintf(out, "curl -H 'Authorization: Bearer %s' http://localhost:8080/api/events/\n", token)
	}
	return nil
}
