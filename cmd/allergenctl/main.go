// allergenctl checks ingredient lists against an avoid list from the command line.
package main

import (
	"errors"
	"os"

	"allergen-guard/cmd/allergenctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, cmd.ErrUnsafe) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
