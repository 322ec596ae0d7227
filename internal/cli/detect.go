package cli

import (
	"IntentBridge/pkg/dialogflow"
	"IntentBridge/pkg/structconv"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	detectContexts []string
	detectSession  string
)

var detectCmd = &cobra.Command{
	Use:   "detect <query>",
	Short: "Run a text query against the agent",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		client, err := newClient(ctx)
		if err != nil {
			return err
		}

		session, err := openSession(ctx, client, detectSession, detectContexts)
		if err != nil {
			return err
		}
		sessionID := session.ID()

		result, err := session.DetectIntent(ctx, strings.Join(args, " "), detectContexts)
		if err != nil {
			return err
		}

		params, err := structconv.MarshalJSON(result.PlainParameters())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, labelStyle.Render("session:    ")+sessionID)
		fmt.Fprintln(out, labelStyle.Render("intent:     ")+nameStyle.Render(result.IntentDisplayName))
		fmt.Fprintln(out, labelStyle.Render("confidence: ")+fmt.Sprintf("%.2f", result.Confidence))
		fmt.Fprintln(out, labelStyle.Render("response:   ")+successStyle.Render(result.FulfillmentText))
		fmt.Fprintln(out, labelStyle.Render("parameters: ")+string(params))
		if len(result.OutputContexts) > 0 {
			fmt.Fprintln(out, labelStyle.Render("contexts:   ")+strings.Join(result.OutputContexts, ", "))
		}
		return nil
	},
}

type sessionOpener interface {
	Session(id string) *dialogflow.Session
	NewSession(ctx context.Context, contextNames []string) (*dialogflow.Session, error)
}

// openSession continues sessionID when given. Otherwise a new session is opened with the
// contexts already created in it.
func openSession(ctx context.Context, client sessionOpener, sessionID string, contextNames []string) (*dialogflow.Session, error) {
	if sessionID != "" {
		return client.Session(sessionID), nil
	}
	return client.NewSession(ctx, contextNames)
}

func init() {
	detectCmd.Flags().StringSliceVar(&detectContexts, "context", nil, "input context to attach (repeatable)")
	detectCmd.Flags().StringVar(&detectSession, "session", "", "session id to continue (default: new session with --context created in it)")
}
