package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the vocabulary",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore(context.Background(), false)
		if err != nil {
			fatal("Error opening vocabulary", err)
		}

		vocab := store.Vocabulary()

		if showJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(vocab); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		fmt.Printf("Entities (%d):\n", len(vocab.Entities))
		for _, e := range vocab.Entities {
			label := e.Label
			if label == "" {
				label = e.ID
			}
			fmt.Printf("  %s  %s (%d properties)\n", e.ID, label, len(e.Schema))
		}

		fmt.Printf("Relations (%d):\n", len(vocab.Relations))
		for _, r := range vocab.Relations {
			fmt.Printf("  %s  %s -> %s  %s\n", r.ID, r.Source, r.Target, r.Label)
		}

		fmt.Printf("Tags (%d):\n", len(vocab.Tags))
		for _, t := range vocab.Tags {
			fmt.Printf("  %s\n", t)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
}
