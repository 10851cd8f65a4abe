package commands

import (
	"github.com/spf13/cobra"

	"github.com/matheuscmelo/stackvm/cmd/stackvm/handlers"
)

// powerCommand builds one of the power verbs; they all take an instance
// name and delegate to the same handler.
func powerCommand(verb, short string) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " INSTANCE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, verbose := rootFlags(cmd)
			return handlers.Power(cmd.Context(), configPath, verbose, verb, args[0])
		},
	}
}

// Start returns the start command.
func Start() *cobra.Command {
	return powerCommand("start", "Start an instance (resumes or unpauses when applicable)")
}

// Stop returns the stop command.
func Stop() *cobra.Command {
	return powerCommand("stop", "Stop an instance")
}

// Restart returns the restart command.
func Restart() *cobra.Command {
	return powerCommand("restart", "Stop an instance, then start it again")
}

// Suspend returns the suspend command.
func Suspend() *cobra.Command {
	return powerCommand("suspend", "Suspend an instance to disk")
}

// Pause returns the pause command.
func Pause() *cobra.Command {
	return powerCommand("pause", "Pause an instance in memory")
}
