// Command lpsolve solves small linear programs with the two-phase simplex
// method and prints the optimum together with a sensitivity report.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
