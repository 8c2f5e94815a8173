package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dHumanities/immarkus/pkg/core"
)

var (
	relationID    string
	relationLabel string
)

var relationCmd = &cobra.Command{
	Use:   "relation",
	Short: "Manage relations between entity types",
}

var relationAddCmd = &cobra.Command{
	Use:   "add <source-entity> <target-entity>",
	Short: "Add a relation",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, err := openStore(ctx, true)
		if err != nil {
			fatal("Error opening vocabulary", err)
		}

		id := relationID
		if id == "" {
			id = uuid.NewString()
		}

		relation := core.Relation{
			ID:     id,
			Source: args[0],
			Target: args[1],
			Label:  relationLabel,
		}
		if err := store.AddRelation(ctx, relation); err != nil {
			fatal("Error adding relation", err)
		}
		fmt.Printf("Added relation %s\n", id)
	},
}

var relationRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a relation (no-op if absent)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, err := openStore(ctx, false)
		if err != nil {
			fatal("Error opening vocabulary", err)
		}
		if err := store.RemoveRelation(ctx, args[0]); err != nil {
			fatal("Error removing relation", err)
		}
		fmt.Printf("Removed relation %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(relationCmd)
	relationCmd.AddCommand(relationAddCmd)
	relationCmd.AddCommand(relationRemoveCmd)
	relationAddCmd.Flags().StringVar(&relationID, "id", "", "Relation id (generated when omitted)")
	relationAddCmd.Flags().StringVar(&relationLabel, "label", "", "Display label")
}
