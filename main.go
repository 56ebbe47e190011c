// go-multiuser runs a node of a shared tracking session.
package main

import (
	"fmt"
	"os"

	"github.com/sun-23/go-multiuser/cmd"
	"github.com/sun-23/go-multiuser/node"
)

var (
	version string
	commit  string
	branch  string
)

func main() { // run the app
	cmd.Version = version
	cmd.Commit = commit
	cmd.Branch = branch
	if err := node.GetCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
