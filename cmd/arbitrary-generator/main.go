// Command arbitrary-generator writes random-construction routines for Go
// types so property tests can draw values of them.
//
//	//go:generate go run arbitrary-generator/cmd/arbitrary-generator gen --type Shape,Point
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
