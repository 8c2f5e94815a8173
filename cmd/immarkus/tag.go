package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage free-form tags",
}

var tagAddCmd = &cobra.Command{
	Use:   "add <value>",
	Short: "Add a tag",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, err := openStore(ctx, true)
		if err != nil {
			fatal("Error opening vocabulary", err)
		}
		if err := store.AddTag(ctx, args[0]); err != nil {
			fatal("Error adding tag", err)
		}
		fmt.Printf("Added tag %s\n", args[0])
	},
}

var tagRemoveCmd = &cobra.Command{
	Use:   "remove <value>",
	Short: "Remove a tag (no-op if absent)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, err := openStore(ctx, false)
		if err != nil {
			fatal("Error opening vocabulary", err)
		}
		if err := store.RemoveTag(ctx, args[0]); err != nil {
			fatal("Error removing tag", err)
		}
		fmt.Printf("Removed tag %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(tagCmd)
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRemoveCmd)
}
