package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aviarylab/chirp/pkg/cli"
	"github.com/aviarylab/chirp/pkg/cluster"
	"github.com/aviarylab/chirp/pkg/feature"
	"github.com/aviarylab/chirp/pkg/runstore"
)

var clusterFlags struct {
	features string
	output   string
	format   string
	save     bool
}

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Cluster a batch of snippet feature records",
	Long: `Cluster reads a JSON array of snippet feature records, groups the
snippets by acoustic similarity, and writes the result (cluster labels,
2-D embedding, cluster centers, valid indices, counts) as JSON or YAML.

Snippets with malformed or non-finite features are skipped with a
warning; a batch with no usable snippet fails as a whole.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		batch, err := readBatch(clusterFlags.features)
		if err != nil {
			return err
		}

		p := cluster.New()
		res, err := p.Run(cmd.Context(), batch)
		if err != nil {
			return err
		}

		fmt.Fprint(os.Stderr, cli.RunSummary(res, len(batch), cli.DefaultTheme))

		if clusterFlags.save {
			id, err := saveRun(cmd, res, len(batch))
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "saved run %s\n", id)
		}

		return cli.Output(res, cli.OutputOptions{
			Format: outputFormat(clusterFlags.format),
			File:   clusterFlags.output,
		})
	},
}

func init() {
	clusterCmd.Flags().StringVarP(&clusterFlags.features, "features", "f", "", "path to features JSON file (required)")
	clusterCmd.Flags().StringVarP(&clusterFlags.output, "output", "o", "", "output file (default stdout)")
	clusterCmd.Flags().StringVar(&clusterFlags.format, "format", "", "output format: json or yaml")
	clusterCmd.Flags().BoolVar(&clusterFlags.save, "save", false, "persist the run in the run store")
	_ = clusterCmd.MarkFlagRequired("features")

	rootCmd.AddCommand(clusterCmd)
}

// readBatch loads the upstream extractor's JSON contract: an array of
// {id, features} records.
func readBatch(path string) ([]feature.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read features: %w", err)
	}
	var batch []feature.Record
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("parse features %s: %w", path, err)
	}
	if len(batch) == 0 {
		return nil, fmt.Errorf("features file %s contains no records", path)
	}
	return batch, nil
}

func saveRun(cmd *cobra.Command, res *cluster.Result, batchSize int) (string, error) {
	store, err := openStore()
	if err != nil {
		return "", err
	}
	defer store.Close()

	run := &runstore.Run{
		ID:        runstore.NewID(),
		CreatedAt: time.Now().UTC(),
		Source:    clusterFlags.features,
		Snippets:  batchSize,
		Result:    res,
	}
	if err := store.Put(cmd.Context(), run); err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}
	return run.ID, nil
}

// outputFormat resolves the effective format: flag, then config, then
// json.
func outputFormat(flag string) cli.OutputFormat {
	if flag != "" {
		return cli.OutputFormat(flag)
	}
	if cfg, err := GetConfig(); err == nil && cfg.OutputFormat != "" {
		return cli.OutputFormat(cfg.OutputFormat)
	}
	return cli.FormatJSON
}
