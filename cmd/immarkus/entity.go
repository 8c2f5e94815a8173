package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dHumanities/immarkus/pkg/core"
)

var (
	entityLabel      string
	entityColor      string
	entitySchemaFile string
)

var entityCmd = &cobra.Command{
	Use:   "entity",
	Short: "Manage entity types",
}

var entityAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add an entity type",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, err := openStore(ctx, true)
		if err != nil {
			fatal("Error opening vocabulary", err)
		}

		entity := core.Entity{
			ID:    args[0],
			Label: entityLabel,
			Color: entityColor,
		}

		if entitySchemaFile != "" {
			data, err := os.ReadFile(entitySchemaFile)
			if err != nil {
				fatal("Error reading schema file", err)
			}
			if err := json.Unmarshal(data, &entity.Schema); err != nil {
				fatal("Error parsing schema file", err)
			}
		}

		if err := store.AddEntity(ctx, entity); err != nil {
			fatal("Error adding entity", err)
		}
		fmt.Printf("Added entity %s\n", entity.ID)
	},
}

var entityRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an entity type (no-op if absent)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, err := openStore(ctx, false)
		if err != nil {
			fatal("Error opening vocabulary", err)
		}
		if err := store.RemoveEntity(ctx, args[0]); err != nil {
			fatal("Error removing entity", err)
		}
		fmt.Printf("Removed entity %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(entityCmd)
	entityCmd.AddCommand(entityAddCmd)
	entityCmd.AddCommand(entityRemoveCmd)
	entityAddCmd.Flags().StringVar(&entityLabel, "label", "", "Display label")
	entityAddCmd.Flags().StringVar(&entityColor, "color", "", "Badge color (hex)")
	entityAddCmd.Flags().StringVar(&entitySchemaFile, "schema", "", "JSON file with the property definitions")
}
