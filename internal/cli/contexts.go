package cli

import (
	"IntentBridge/pkg/dialogflow"

	"github.com/spf13/cobra"
)

var contextsCmd = &cobra.Command{
	Use:   "contexts <session-id> [context-name...]",
	Short: "Show the active contexts of a session",
	Long:  `Without names every active context is listed. With names each one is fetched and failures are reported per context.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		client, err := newClient(ctx)
		if err != nil {
			return err
		}

		sessionID, names := args[0], args[1:]
		out := cmd.OutOrStdout()

		if len(names) == 0 {
			contexts, err := client.ListContexts(ctx, sessionID)
			if err != nil {
				return err
			}
			for _, c := range contexts {
				if err := renderContext(out, c); err != nil {
					return err
				}
			}
			return nil
		}

		results := client.Session(sessionID).GetContexts(ctx, names)
		for _, r := range results {
			if !r.OK() {
				continue
			}
			if err := renderContext(out, r.Value); err != nil {
				return err
			}
		}
		return dialogflow.JoinErrors(dialogflow.Failed(results))
	},
}
