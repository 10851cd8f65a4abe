package commands

import (
	"github.com/spf13/cobra"

	"github.com/matheuscmelo/stackvm/cmd/stackvm/handlers"
)

// Templatize returns the templatize command.
//
// The templatize command converts an instance into a reusable template
// image carrying the instance's name. The instance is consumed by the
// conversion.
func Templatize() *cobra.Command {
	return &cobra.Command{
		Use:   "templatize INSTANCE",
		Short: "Convert an instance into a template image",
		Long: `Templatize stops the instance, snapshots it under the instance's own
name and deletes the instance. The resulting image can be deployed with
"stackvm deploy". If the conversion fails the instance keeps its name.

Example:
  stackvm templatize web1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, verbose := rootFlags(cmd)
			return handlers.Templatize(cmd.Context(), configPath, verbose, args[0])
		},
	}
}
