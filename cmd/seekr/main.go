// Command seekr is a semantic search client for a vector-search backend.
package main

import (
	"os"

	"github.com/custodia-labs/seekr/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetWiring(wire)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
