package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aviarylab/chirp/pkg/cli"
	"github.com/aviarylab/chirp/pkg/runstore"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse, inspect, and delete saved runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no saved runs")
			return nil
		}
		for _, r := range runs {
			fmt.Printf("%s  %s  snippets=%d clusters=%d noise=%d  %s\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"),
				r.Snippets, r.Result.TotalClusters, r.Result.NoisePoints, r.Source)
		}
		return nil
	},
}

var runsShowFlags struct {
	format string
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved run's full result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		run, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return cli.Output(run, cli.OutputOptions{Format: outputFormat(runsShowFlags.format)})
	},
}

var runsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a saved run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		return store.Delete(cmd.Context(), args[0])
	},
}

func init() {
	runsShowCmd.Flags().StringVar(&runsShowFlags.format, "format", "", "output format: json or yaml")

	runsCmd.AddCommand(runsListCmd, runsShowCmd, runsRmCmd)
	rootCmd.AddCommand(runsCmd)
}

// openStore opens the configured BadgerDB run store.
func openStore() (runstore.Store, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	store, err := runstore.NewBadger(runstore.BadgerOptions{Dir: cfg.StorePath()})
	if err != nil {
		return nil, fmt.Errorf("open run store: %w", err)
	}
	return store, nil
}
