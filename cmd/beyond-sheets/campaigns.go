package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/beyond-sheets/internal/config"
	"github.com/KirkDiggler/beyond-sheets/internal/services/scraper"
)

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "List all your campaigns",
	Long:  "Lists the active campaigns the session cookie can see, with the campaign IDs the scrape command takes.",
	Args:  cobra.NoArgs,
	RunE:  runCampaigns,
}

func init() {
	rootCmd.AddCommand(campaignsCmd)
}

func runCampaigns(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Beyond.Session == "" {
		printSessionHelp()
		return nil
	}

	client, err := newBeyondClient(cfg)
	if err != nil {
		return err
	}

	repo, cleanup, err := newRepository(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	svc := scraper.NewService(&scraper.ServiceConfig{
		Client:     client,
		Repository: repo,
	})

	fmt.Println("Fetching your campaigns...")
	output, err := svc.ListCampaigns(context.Background(), &scraper.ListCampaignsInput{})
	if err != nil {
		return err
	}

	fmt.Printf("\nFound %d campaigns:\n\n", len(output.Campaigns))
	for _, campaign := range output.Campaigns {
		fmt.Printf("  ID: %d\n", campaign.ID)
		fmt.Printf("  Name: %s\n", campaign.Name)
		fmt.Printf("  URL: %s\n\n", campaign.URL)
	}
	fmt.Println("To scrape a campaign, run: beyond-sheets scrape <campaign_id>")

	return nil
}
