package commands

import (
	"github.com/spf13/cobra"

	"github.com/matheuscmelo/stackvm/cmd/stackvm/handlers"
)

// List returns the list command.
func List() *cobra.Command {
	var templates bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List instances or templates",
		Long: `List prints a table of all instances visible to the tenant, including
their power state and floating IP. With --templates it lists images instead.

Example:
  stackvm list -c stackvm.yaml
  stackvm list --templates`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, verbose := rootFlags(cmd)
			if templates {
				return handlers.ListTemplates(cmd.Context(), configPath, verbose)
			}
			return handlers.ListInstances(cmd.Context(), configPath, verbose)
		},
	}

	cmd.Flags().BoolVar(&templates, "templates", false, "List templates instead of instances")

	return cmd
}
