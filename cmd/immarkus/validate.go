package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dHumanities/immarkus/pkg/annotation"
	"github.com/dHumanities/immarkus/pkg/form"
)

var validateRoot string

var validateCmd = &cobra.Command{
	Use:   "validate <pattern>",
	Short: "Validate annotation sidecar files against the vocabulary",
	Long: `Validates every annotation document matching the doublestar pattern
(e.g. "**/*.annotations.json") against the property schemas of the
vocabulary. Reports required and malformed property values.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		store, err := openStore(ctx, false)
		if err != nil {
			fatal("Error opening vocabulary", err)
		}

		files, err := annotation.NewFileStore(validateRoot)
		if err != nil {
			fatal("Error opening annotation root", err)
		}

		matches, err := files.Files(ctx, args[0])
		if err != nil {
			fatal("Error listing annotation files", err)
		}

		failures := 0
		for _, rel := range matches {
			doc, err := files.Read(ctx, rel)
			if err != nil {
				fmt.Printf("%s: %v\n", rel, err)
				failures++
				continue
			}

			for _, a := range doc.Annotations {
				session := form.NewSession(a, store, form.WithLogger(slog.Default()))
				for _, fieldErr := range session.Validate() {
					fmt.Printf("%s: annotation %s: %s: %s\n", rel, a.ID, fieldErr.Name, fieldErr.Reason)
					failures++
				}
			}
		}

		if failures > 0 {
			fmt.Printf("%d problem(s) in %d file(s)\n", failures, len(matches))
			os.Exit(1)
		}
		fmt.Printf("%d file(s) OK\n", len(matches))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateRoot, "root", ".", "Collection root directory")
}
