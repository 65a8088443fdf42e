// cmd_handlers.go - Handler der Subcommands
// Hauptfunktionen: DumpHandler, ArangeHandler, EnvHandler
package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ndkit/ndkit/dtype"
	"github.com/ndkit/ndkit/envconfig"
	"github.com/ndkit/ndkit/nd"
)

// DumpHandler liest eine Datei als Array und gibt sie aus
func DumpHandler(cmd *cobra.Command, args []string) error {
	typestr, _ := cmd.Flags().GetString("dtype")
	sep, _ := cmd.Flags().GetString("sep")
	count, _ := cmd.Flags().GetInt("count")
	precision, _ := cmd.Flags().GetInt("precision")
	edgeItems, _ := cmd.Flags().GetInt("edge-items")

	d, err := dtype.ParseTypeString(typestr)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	a, err := nd.FromFile(f, d, count, sep)
	if err != nil {
		return err
	}
	defer a.Release()

	fmt.Fprintf(cmd.OutOrStdout(), "%s %v\n", d.TypeString(), a.Shape())
	fmt.Fprintln(cmd.OutOrStdout(), nd.Dump(a,
		nd.DumpWithPrecision(precision),
		nd.DumpWithEdgeItems(edgeItems)))
	return nil
}

// ArangeHandler gibt einen Zahlenbereich aus
func ArangeHandler(cmd *cobra.Command, args []string) error {
	var vals [3]float64
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("argument %q: %w", arg, err)
		}
		vals[i] = v
	}

	typestr, _ := cmd.Flags().GetString("dtype")
	d, err := dtype.ParseTypeString(typestr)
	if err != nil {
		return err
	}

	a, err := nd.Arange(vals[0], vals[1], vals[2], d)
	if err != nil {
		return err
	}
	defer a.Release()

	fmt.Fprintln(cmd.OutOrStdout(), nd.Dump(a))
	return nil
}

// EnvHandler zeigt die wirksame Konfiguration an
func EnvHandler(cmd *cobra.Command, args []string) error {
	vars := envconfig.AsMap()
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := vars[k]
		fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-12v %s\n", v.Name, v.Value, v.Description)
	}
	return nil
}
