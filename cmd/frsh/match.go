package main

import (
	"github.com/spf13/cobra"
	"github.com/vitalvas/frsh/routes"
	"gopkg.in/yaml.v3"
)

// matchResult is the YAML shape printed for one path.
type matchResult struct {
	Path        string                 `yaml:"path"`
	Destination routes.DestinationKind `yaml:"destination"`
	Route       string                 `yaml:"route"`
	File        string                 `yaml:"file,omitempty"`
	Params      map[string]string      `yaml:"params,omitempty"`
}

func newMatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "match <path>...",
		Short: "Resolve request paths against the manifest",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadManifest()
			if err != nil {
				return err
			}
			matcher, err := routes.NewMatcher(m)
			if err != nil {
				return err
			}

			results := make([]matchResult, 0, len(args))
			for _, p := range args {
				res := matchResult{
					Path:        p,
					Destination: matcher.Classify(p),
					Route:       matcher.Route(p),
				}
				if match, ok := matcher.Match(p); ok && res.Destination == routes.Route {
					res.File = match.Entry.Path
					res.Params = match.Params
				}
				results = append(results, res)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(results); err != nil {
				return err
			}

			return enc.Close()
		},
	}
}
