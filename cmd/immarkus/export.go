package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dHumanities/immarkus/pkg/adapters/fs"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the vocabulary as JSON or YAML",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore(context.Background(), false)
		if err != nil {
			fatal("Error opening vocabulary", err)
		}

		serializers := fs.DefaultSerializers()
		s, ok := serializers["."+exportFormat]
		if !ok {
			fatal("Error exporting", fmt.Errorf("unsupported format: %s", exportFormat))
		}

		data, err := s.Marshal(store.Vocabulary())
		if err != nil {
			fatal("Error serializing vocabulary", err)
		}

		if exportOut == "" {
			fmt.Print(string(data))
			return
		}
		if err := os.WriteFile(exportOut, data, 0644); err != nil {
			fatal("Error writing export", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format (json or yaml)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (stdout when omitted)")
}
