package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dHumanities/immarkus"
	"github.com/dHumanities/immarkus/pkg/core"
)

var (
	verbose   bool
	vocabPath string
	adapter   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "immarkus",
	Short: "Manage entity vocabularies and schema-typed annotation properties",
	Long: `immarkus maintains the vocabulary document of an image annotation
collection (entity types with typed property schemas, relations, tags)
and validates annotation sidecar files against it.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&vocabPath, "file", "f", ".", "Vocabulary document (or collection directory)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "fs", "Storage adapter (fs or sqlite)")
}

// openStore opens the vocabulary store for the configured path.
func openStore(ctx context.Context, autoCreate bool) (*core.Store, error) {
	return immarkus.Open(ctx, vocabPath,
		immarkus.WithAdapter(adapter),
		immarkus.WithAutoCreate(autoCreate),
		immarkus.WithLogger(slog.Default()),
	)
}
