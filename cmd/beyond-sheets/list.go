package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/beyond-sheets/internal/config"
	"github.com/KirkDiggler/beyond-sheets/internal/render"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available characters",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	repo, cleanup, err := newRepository(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	docs, err := repo.List(context.Background())
	if err != nil {
		return err
	}

	return render.List(os.Stdout, docs)
}
