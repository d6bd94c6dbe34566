package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vitalvas/frsh/dom"
	"github.com/vitalvas/frsh/partial"
)

func newPatchCmd(a *app) *cobra.Command {
	var livePath, responsePath string

	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Apply the partial regions of a response to a live document",
		Long: `Patch parses the live document, applies every partial region of the
response document that has a counterpart in it, and writes the result to
standard output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			live, err := os.Open(livePath)
			if err != nil {
				return fmt.Errorf("open live document: %w", err)
			}
			defer live.Close()

			doc, err := dom.Parse(live)
			if err != nil {
				return err
			}

			resp, err := os.Open(responsePath)
			if err != nil {
				return fmt.Errorf("open response: %w", err)
			}
			defer resp.Close()

			n, err := partial.ApplyHTML(doc.Root(), resp)
			if err != nil {
				return err
			}
			a.logger.Info("partials applied", "regions", n)

			return doc.Render(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&livePath, "live", "", "live HTML document")
	cmd.Flags().StringVar(&responsePath, "response", "", "partial response HTML document")
	cmd.MarkFlagRequired("live")
	cmd.MarkFlagRequired("response")

	return cmd
}
