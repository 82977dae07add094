// Command benchlab is the operations surface over an artifact tree
// produced by benchmark runs: a local report server, a spreadsheet
// exporter, and cleanup.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"benchlab/adapters/excel"
	"benchlab/adapters/fsstore"
	"benchlab/internal/config"
	"benchlab/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "benchlab",
		Short:         "Inspect and export benchmark analysis artifacts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newExportCmd(), newCleanCmd())
	return root
}

func load() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an HTML view of the benchmark reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			log := logging.New(logging.Options{Level: cfg.Logging.Level, File: cfg.Logging.File})
			srv := newServer(cfg, log)
			return srv.ListenAndServe(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8712", "listen address")
	return cmd
}

func newExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all benchmark estimates to a spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			store := fsstore.New(cfg.Output.Dir)
			exporter := excel.NewExporter(store, cfg.Analysis.NoiseThreshold)
			if err := exporter.Export(out); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "benchlab.xlsx", "output file")
	return cmd
}

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete the artifact tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if err := fsstore.New(cfg.Output.Dir).RemoveTree(cfg.Output.Dir); err != nil {
				return err
			}
			fmt.Printf("removed %s\n", cfg.Output.Dir)
			return nil
		},
	}
}
