package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/beyond-sheets/internal/config"
	"github.com/KirkDiggler/beyond-sheets/internal/domain/character"
	"github.com/KirkDiggler/beyond-sheets/internal/errors"
	"github.com/KirkDiggler/beyond-sheets/internal/render"
	"github.com/KirkDiggler/beyond-sheets/internal/repositories/documents"
)

// viewCommand builds one archive view command. Every view resolves the
// character the same way, only the renderer differs.
func viewCommand(name, short string, view func(io.Writer, *character.Document) error) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <name>",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runView(view, args)
		},
	}
}

func init() {
	rootCmd.AddCommand(
		viewCommand("sheet", "Full character sheet with all stats", render.Sheet),
		viewCommand("overview", "Brief overview (stats, HP, AC, spellcasting)", render.Overview),
		viewCommand("spells", "List all spells", render.Spells),
		viewCommand("features", "List class/race features and feats", render.Features),
		viewCommand("inventory", "List equipment and currency", render.Inventory),
		viewCommand("summary", "One-line summary", render.Summary),
	)
}

// runRoot makes a bare character name default to the sheet view, so
// "beyond-sheets tavren" works like "beyond-sheets sheet tavren".
func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	return runView(render.Sheet, args)
}

func runView(view func(io.Writer, *character.Document) error, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	repo, cleanup, err := newRepository(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	query := strings.Join(args, " ")

	doc, err := repo.FindByName(ctx, query)
	if err != nil {
		return printLookupHelp(ctx, repo, query, err)
	}

	return view(os.Stdout, doc)
}

// printLookupHelp turns a failed name lookup into the guidance the
// archive can give: the candidate matches, or everything archived.
func printLookupHelp(ctx context.Context, repo documents.Repository, query string, err error) error {
	if names, ok := errors.GetMeta(err)["candidates"].([]string); ok {
		fmt.Printf("Multiple matches for '%s':\n", query)
		for _, name := range names {
			fmt.Printf("  - %s\n", name)
		}
		return nil
	}

	if errors.IsNotFound(err) {
		fmt.Printf("No character found matching '%s'\n", query)
		fmt.Println("\nAvailable characters:")
		docs, listErr := repo.List(ctx)
		if listErr != nil {
			return listErr
		}
		for _, doc := range docs {
			fmt.Printf("  - %s (ID: %d)\n", doc.Name, doc.ID)
		}
		return nil
	}

	return err
}
