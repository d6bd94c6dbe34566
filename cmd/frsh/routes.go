package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vitalvas/frsh/routes"
)

func newRoutesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "routes",
		Aliases: []string{"r"},
		Short:   "List manifest entries with their kind and path template",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.loadManifest()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tTEMPLATE\tFILE")
			for _, e := range m.Entries {
				template := e.Template()
				if e.Kind() != routes.KindRoute {
					template = e.Dir()
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Kind(), template, e.Path)
			}

			return tw.Flush()
		},
	}
}
