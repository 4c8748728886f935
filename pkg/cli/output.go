package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// OutputFormat selects how structured results are serialized.
type OutputFormat string

const (
	// FormatJSON writes indented JSON (the downstream contract format).
	FormatJSON OutputFormat = "json"
	// FormatYAML writes YAML, easier on human eyes in a terminal.
	FormatYAML OutputFormat = "yaml"
)

// OutputOptions configures where and how a result is written.
type OutputOptions struct {
	// Format is the serialization format. Default: json.
	Format OutputFormat

	// File is the output path; empty writes to stdout.
	File string

	// Writer overrides File when set.
	Writer io.Writer
}

// Output serializes result to the configured destination.
func Output(result any, opts OutputOptions) error {
	var w io.Writer = os.Stdout
	if opts.Writer != nil {
		w = opts.Writer
	} else if opts.File != "" {
		f, err := os.Create(opts.File)
		if err != nil {
			return fmt.Errorf("cli: create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch opts.Format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case FormatYAML:
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("cli: marshal output: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("cli: unsupported output format %q", opts.Format)
	}
}
