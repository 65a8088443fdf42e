// cmd_builders.go - Command-Builder Funktionen
// Hauptfunktionen: newDumpCmd, newArangeCmd, newEnvCmd
package cmd

import (
	"github.com/spf13/cobra"
)

// newDumpCmd - Erstellt den dump Command
func newDumpCmd() *cobra.Command {
	dumpCmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Read a file as array data and print it",
		Args:  cobra.ExactArgs(1),
		RunE:  DumpHandler,
	}

	dumpCmd.Flags().String("dtype", "<f8", "Element typestring (e.g. <f8, <i4, |S8)")
	dumpCmd.Flags().String("sep", "", "Separator for text input; empty reads binary")
	dumpCmd.Flags().Int("count", -1, "Number of elements to read, -1 for all")
	dumpCmd.Flags().Int("precision", 4, "Decimal places for float output")
	dumpCmd.Flags().Int("edge-items", 3, "Elements shown at each end when truncating")

	return dumpCmd
}

// newArangeCmd - Erstellt den arange Command
func newArangeCmd() *cobra.Command {
	arangeCmd := &cobra.Command{
		Use:   "arange START STOP STEP",
		Short: "Print an evenly spaced range",
		Args:  cobra.ExactArgs(3),
		RunE:  ArangeHandler,
	}

	arangeCmd.Flags().String("dtype", "<f8", "Element typestring")

	return arangeCmd
}

// newEnvCmd - Erstellt den env Command
func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Show the effective environment configuration",
		Args:  cobra.NoArgs,
		RunE:  EnvHandler,
	}
}
