package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nekogravitycat/flight-schedule-grid/internal/auth"
)

var (
	tokenUser string
	tokenName string
	tokenRole string
	tokenTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a development access token",
	Long: `Sign an access token with JWT_SECRET for local testing. Production tokens
come from the identity provider.

Example:
  gridctl token --user 7f3a... --name "Jamie Park" --role dispatcher
`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "User id (token subject)")
	tokenCmd.Flags().StringVar(&tokenName, "name", "", "Display name")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "", "Role claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Lifetime (default JWT_ACCESS_TOKEN_TTL)")
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	if cfg.IsProduction {
		return fmt.Errorf("refusing to issue development tokens with APP_ENV=prod")
	}

	ttl := cfg.JWTAccessTokenTTL
	if tokenTTL > 0 {
		ttl = tokenTTL
	}

	token, err := auth.NewJWTManager(cfg.JWTSecret, ttl).GenerateAccessToken(tokenUser, tokenName, tokenRole)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
