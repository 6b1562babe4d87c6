package main

import (
	"fmt"
	"strings"
	"topo/export"
	"topo/importer"

	"github.com/spf13/cobra"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List export and heightmap formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			descriptions := export.FormatDescriptions()

			fmt.Fprintln(out, "Export formats:")
			for _, f := range export.AvailableFormats() {
				fmt.Fprintf(out, "  %-6s %s\n", f, descriptions[f])
			}

			fmt.Fprintf(out, "\nHeightmap formats: %s\n",
				strings.Join(importer.NewImporterRegistry().AvailableFormats(), ", "))
			return nil
		},
	}
}
