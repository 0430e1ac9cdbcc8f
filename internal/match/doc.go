// Package match ranks identifiers by similarity. It backs the "did you mean"
// hints attached to unknown type names.
package match
