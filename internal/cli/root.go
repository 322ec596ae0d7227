package cli

import (
	"IntentBridge/pkg/dialogflow"
	"IntentBridge/pkg/log"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	envFile string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "intentctl",
	Short: "Inspect and exercise a Dialogflow ES agent",
	Long:  `intentctl lists the intents of an agent, renders their followup tree and runs test queries against it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile == "" {
			return nil
		}
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with DIALOGFLOW_* settings")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "deadline for agent calls")

	rootCmd.AddCommand(intentsCmd, detectCmd, contextsCmd, tokenCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, failStyle.Render(err.Error()))
		os.Exit(1)
	}
}

// newClient connects to the agent named by the environment.
func newClient(ctx context.Context) (*dialogflow.Client, error) {
	return dialogflow.New(ctx, dialogflow.ConfigFromEnv(), log.NewLogger())
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}
