package cli

import (
	"IntentBridge/pkg/intent"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var intentsCmd = &cobra.Command{
	Use:   "intents",
	Short: "Read the agent's intents",
}

var intentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List intents in agent order",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := loadRegistry(cmd)
		if err != nil {
			return err
		}
		return renderList(cmd.OutOrStdout(), registry)
	},
}

var intentsTreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Render the followup intent tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := loadRegistry(cmd)
		if err != nil {
			return err
		}
		return renderTree(cmd.OutOrStdout(), registry)
	},
}

var intentsShowCmd = &cobra.Command{
	Use:   "show <display-name>",
	Short: "Show one intent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := loadRegistry(cmd)
		if err != nil {
			return err
		}
		it, err := registry.ByDisplayName(args[0])
		if err != nil {
			return err
		}
		return renderIntent(cmd.OutOrStdout(), it)
	},
}

func init() {
	intentsCmd.AddCommand(intentsListCmd, intentsTreeCmd, intentsShowCmd)
}

// loadRegistry fetches and links every intent. Link failures are printed as warnings; the
// registry is still usable for the intents that did link.
func loadRegistry(cmd *cobra.Command) (*intent.Registry, error) {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	client, err := newClient(ctx)
	if err != nil {
		return nil, err
	}

	records, err := client.ListIntents(ctx)
	if err != nil {
		return nil, err
	}

	return buildRegistry(cmd, records)
}

func buildRegistry(cmd *cobra.Command, records []*intent.Record) (*intent.Registry, error) {
	registry := intent.NewRegistry()
	registry.Ingest(records)

	if err := registry.LinkParents(); err != nil {
		if errors.Is(err, intent.ErrNotIngested) {
			return registry, nil
		}
		fmt.Fprintln(cmd.ErrOrStderr(), failStyle.Render("warning: "+err.Error()))
	}

	for _, dup := range registry.DuplicateDisplayNames() {
		fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render("warning: duplicate display name "+dup))
	}

	return registry, nil
}
