// Package cli provides output helpers shared by the chirp commands:
// structured result writing (JSON or YAML, to stdout or a file) and a
// styled terminal summary of a clustering run.
package cli
