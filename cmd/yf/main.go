// Package main is the entry point for the yf CLI.
package main

import (
	"github.com/mfreitag/yelp-fusion/cmd/yf/cmd"
)

func main() {
	cmd.Execute()
}
