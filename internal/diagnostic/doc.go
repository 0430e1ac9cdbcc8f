// Package diagnostic provides structured errors, warnings and notes
// for the arbitrary generator.
//
// Key capabilities:
//   - Per-type error reporting (e.g. sum types with no variants)
//   - Warnings for options that could not be honoured
//   - Terminal-aware printing of the collected diagnostics
package diagnostic
