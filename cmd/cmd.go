// cmd.go - CLI-Einstieg und Root-Command
// Hauptfunktionen: NewCLI und die Registrierung der Subcommands.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndkit/ndkit/envconfig"
	"github.com/ndkit/ndkit/logutil"
)

// NewCLI erstellt den Root-Command mit allen Subcommands
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "ndkit",
		Short:         "Inspect and convert n-dimensional array data",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(logutil.NewLogger(os.Stderr, envconfig.LogLevel()))
		},
	}

	rootCmd.AddCommand(
		newDumpCmd(),
		newArangeCmd(),
		newEnvCmd(),
	)

	return rootCmd
}
