package cli

import (
	jwtPkg "IntentBridge/pkg/jwt"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	tokenID       string
	tokenUsername string
	tokenTTL      time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an operator token for the mutating API routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, expiresAt, err := jwtPkg.Sign(map[string]interface{}{
			"id":       tokenID,
			"username": tokenUsername,
		}, tokenTTL)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render("expires "+time.Unix(expiresAt, 0).Format(time.RFC3339)))
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenID, "id", "", "operator id")
	tokenCmd.Flags().StringVar(&tokenUsername, "username", "", "operator username")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("id")
	_ = tokenCmd.MarkFlagRequired("username")
}
