// Package main is the entry point for the yelp-fusion server.
package main

import (
	"os"

	"github.com/mfreitag/yelp-fusion/cmd/yelp-fusion/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
