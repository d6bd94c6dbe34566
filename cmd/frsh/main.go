// Command frsh inspects route manifests and applies partial responses to
// HTML documents.
//
//	frsh routes
//	frsh match /users/42 /docs/a/b
//	frsh patch --live page.html --response partial.html
//
// Settings come from flags, then the config file (.frsh.yaml by default),
// then FRSH_* environment variables.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
