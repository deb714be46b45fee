// Command screenctl runs the suppression screen against a single site from
// the command line.
package main

import "github.com/coldharbor-labs/suppression-screen/internal/cli"

func main() {
	cli.Execute()
}
