// govctl operates the governance engine directly on a node database.
package main

import (
	"os"

	"github.com/spacemeshos/go-democracy/cmd"
)

var (
	version string
	commit  string
	branch  string
)

func main() {
	cmd.Version = version
	cmd.Commit = commit
	cmd.Branch = branch
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
