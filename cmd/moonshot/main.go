// Command moonshot drives a GSS-EAP security context as either initiator
// or acceptor, for interactive testing of the mechanism against a live
// EAP/RADIUS deployment.
package main

import (
	"fmt"
	"os"

	"github.com/janetuk/moonshot/cmd/moonshot/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
