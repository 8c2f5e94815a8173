package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dHumanities/immarkus"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty vocabulary document",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		_, err := immarkus.Init(context.Background(),
			vocabPath,
			immarkus.WithAdapter(adapter),
			immarkus.WithAutoCreate(true),
		)
		if err != nil {
			fatal("Error initializing vocabulary", err)
		}
		fmt.Println("Vocabulary initialized.")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
