// Command storefront is a terminal client for the marketplace. It talks to
// the HTTP services, or with --mock to an in-process catalog.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
