// Package config loads the arbitrary.yaml file that selects which types of a
// package get construction routines and how they are built.
//
// Example:
//
//	version: "1"
//	output: arbitrary_gen.go
//	types: [Point, Shape]
//	positional: [Segment]
//	variants:
//	  Shape: [Dot, Segment, Circle]
package config
