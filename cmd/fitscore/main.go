// Command fitscore extracts resume text and scores resumes against job
// descriptions from local files, without the HTTP server or job store.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
