package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/beyond-sheets/internal/config"
	"github.com/KirkDiggler/beyond-sheets/internal/services/scraper"
)

var scrapeBanner = strings.Repeat("=", 60)

var scrapeCmd = &cobra.Command{
	Use:   "scrape [campaign-id] [name]",
	Short: "Scrape campaign characters into the archive",
	Long:  "Archives every character in the given campaign, or in every campaign when no ID is given. The optional name is recorded on the archived documents and names the campaign directory.",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(_ *cobra.Command, args []string) error {
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

	ctx := context.Background()

	if len(args) == 0 {
		return scrapeAll(ctx, svc)
	}

	campaignID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("campaign ID must be a number, got %q", args[0])
	}

	input := &scraper.ScrapeCampaignInput{CampaignID: campaignID}
	if len(args) > 1 {
		input.CampaignName = args[1]
	}

	fmt.Printf("Fetching characters from campaign %d...\n", campaignID)
	output, err := svc.ScrapeCampaign(ctx, input)
	if err != nil {
		return err
	}

	printCampaignResult(output)
	return nil
}

func scrapeAll(ctx context.Context, svc scraper.Service) error {
	fmt.Println("Fetching campaigns...")
	output, err := svc.ScrapeAll(ctx, &scraper.ScrapeAllInput{})
	if err != nil {
		return err
	}
	fmt.Printf("Found %d campaigns\n", len(output.Campaigns)+len(output.Failed))

	for _, result := range output.Campaigns {
		fmt.Printf("\n%s\n", scrapeBanner)
		fmt.Printf("Campaign: %s (ID: %d)\n", result.Run.CampaignName, result.Run.CampaignID)
		fmt.Println(scrapeBanner)
		printCampaignResult(result)
	}

	for _, failed := range output.Failed {
		fmt.Printf("  ✗ Error scraping campaign %s: %v\n", failed.Campaign.Name, failed.Err)
	}

	fmt.Printf("\n%s\n", scrapeBanner)
	fmt.Println("All campaigns scraped!")
	fmt.Println(scrapeBanner)
	return nil
}

func printCampaignResult(output *scraper.ScrapeCampaignOutput) {
	for _, doc := range output.Saved {
		fmt.Printf("  ✓ %s (ID: %d)\n", doc.Name, doc.ID)
	}
	for _, failed := range output.Failed {
		fmt.Printf("  ✗ Error scraping character %d: %v\n", failed.CharacterID, failed.Err)
	}
	fmt.Printf("\nTotal characters scraped: %d/%d\n", len(output.Saved), len(output.Saved)+len(output.Failed))
}
