package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow external changes to the vocabulary document",
	Long: `Watches the backing document and reloads the vocabulary when an
external writer modifies it. There is no cross-process locking: the
last writer wins.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, err := openStore(ctx, false)
		if err != nil {
			fatal("Error opening vocabulary", err)
		}

		events, err := store.Watch(ctx)
		if err != nil {
			fatal("Error watching vocabulary", err)
		}

		lifecycle.Go(ctx, func(ctx context.Context) error {
			for event := range events {
				if err := store.Reload(ctx); err != nil {
					fmt.Printf("reload failed: %v\n", err)
					continue
				}
				vocab := store.Vocabulary()
				fmt.Printf("%s %s (%d entities, %d relations, %d tags)\n",
					event.Type, event.Path,
					len(vocab.Entities), len(vocab.Relations), len(vocab.Tags))
			}
			return nil
		})

		<-ctx.Done()
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
