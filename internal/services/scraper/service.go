package scraper

//go:generate mockgen -destination=mock/mock_service.go -package=mockscraper -source=service.go

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/beyond-sheets/internal/clients/beyond"
	"github.com/KirkDiggler/beyond-sheets/internal/domain/character"
	"github.com/KirkDiggler/beyond-sheets/internal/errors"
	"github.com/KirkDiggler/beyond-sheets/internal/repositories/documents"
	"github.com/KirkDiggler/beyond-sheets/internal/uuid"
)

// Repository is an alias for the document repository interface
type Repository = documents.Repository

// TimeProvider provides the current time, allowing tests to control timestamps
type TimeProvider interface {
	Now() time.Time
}

type clockTimeProvider struct{}

func (c *clockTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// maxConcurrentFetches caps how many character fetches run at once so a
// large campaign doesn't hammer the character service
const maxConcurrentFetches = 4

// ScrapeRun identifies a single pass over a campaign
type ScrapeRun struct {
	ID           string
	CampaignID   int
	CampaignName string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// FailedCharacter records a character that could not be archived during a run
type FailedCharacter struct {
	CharacterID int
	Player      string
	Err         error
}

// FailedCampaign records a campaign that could not be scraped at all
type FailedCampaign struct {
	Campaign *beyond.Campaign
	Err      error
}

// Service defines the scraping operations
type Service interface {
	// ListCampaigns returns the campaigns the session has access to
	ListCampaigns(ctx context.Context, input *ListCampaignsInput) (*ListCampaignsOutput, error)

	// ScrapeCampaign archives every character in a single campaign
	ScrapeCampaign(ctx context.Context, input *ScrapeCampaignInput) (*ScrapeCampaignOutput, error)

	// ScrapeAll archives every character in every accessible campaign
	ScrapeAll(ctx context.Context, input *ScrapeAllInput) (*ScrapeAllOutput, error)
}

type ListCampaignsInput struct{}

type ListCampaignsOutput struct {
	Campaigns []*beyond.Campaign
}

type ScrapeCampaignInput struct {
	CampaignID   int
	CampaignName string // Optional, recorded on the archived documents
}

type ScrapeCampaignOutput struct {
	Run    *ScrapeRun
	Saved  []*character.Document
	Failed []*FailedCharacter
}

type ScrapeAllInput struct{}

type ScrapeAllOutput struct {
	Campaigns []*ScrapeCampaignOutput
	Failed    []*FailedCampaign
}

type service struct {
	client        beyond.Client
	repository    Repository
	uuidGenerator uuid.Generator
	timeProvider  TimeProvider
}

// ServiceConfig holds the dependencies for the scraper service
type ServiceConfig struct {
	Client        beyond.Client  // Required
	Repository    Repository     // Required
	UUIDGenerator uuid.Generator // Optional, will use default if nil
	TimeProvider  TimeProvider   // Optional, will use the wall clock if nil
}

// NewService creates a new scraper service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Client == nil {
		panic("beyond client is required")
	}
	if cfg.Repository == nil {
		panic("document repository is required")
	}

	svc := &service{
		client:     cfg.Client,
		repository: cfg.Repository,
	}

	if cfg.UUIDGenerator != nil {
		svc.uuidGenerator = cfg.UUIDGenerator
	} else {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	if cfg.TimeProvider != nil {
		svc.timeProvider = cfg.TimeProvider
	} else {
		svc.timeProvider = &clockTimeProvider{}
	}

	return svc
}

func (s *service) ListCampaigns(ctx context.Context, input *ListCampaignsInput) (*ListCampaignsOutput, error) {
	campaigns, err := s.client.ListCampaigns(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list campaigns")
	}

	return &ListCampaignsOutput{Campaigns: campaigns}, nil
}

func (s *service) ScrapeCampaign(ctx context.Context, input *ScrapeCampaignInput) (*ScrapeCampaignOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if input.CampaignID == 0 {
		return nil, errors.InvalidArgument("campaign ID is required")
	}

	run := &ScrapeRun{
		ID:           s.uuidGenerator.New(),
		CampaignID:   input.CampaignID,
		CampaignName: input.CampaignName,
		StartedAt:    s.timeProvider.Now(),
	}

	// Discover the character roster
	refs, err := s.client.ListCampaignCharacters(ctx, input.CampaignID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list characters in campaign %d", input.CampaignID).
			WithMeta("campaign_id", input.CampaignID)
	}

	log.Printf("Found %d characters in campaign %d", len(refs), input.CampaignID)

	// Fetch concurrently. Goroutines record their outcome instead of
	// returning an error, one bad character never cancels the rest.
	type fetchResult struct {
		doc *character.Document
		err error
	}

	results := make([]fetchResult, len(refs))

	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)

	for i, ref := range refs {
		g.Go(func() error {
			log.Printf("Scraping character %d (player: %s)", ref.ID, ref.Player)
			doc, fetchErr := s.client.GetCharacter(ctx, ref.ID)
			results[i] = fetchResult{doc: doc, err: fetchErr}
			return nil
		})
	}
	_ = g.Wait()

	campaign := &character.CampaignRef{
		ID:   input.CampaignID,
		Name: input.CampaignName,
	}

	output := &ScrapeCampaignOutput{Run: run}

	// Stamp and save in roster order
	for i, ref := range refs {
		result := results[i]
		if result.err != nil {
			log.Printf("Failed to scrape character %d: %v", ref.ID, result.err)
			output.Failed = append(output.Failed, &FailedCharacter{
				CharacterID: ref.ID,
				Player:      ref.Player,
				Err:         result.err,
			})
			continue
		}

		doc := result.doc
		doc.Player = ref.Player
		doc.Campaign = campaign
		doc.Scraped = &character.ScrapeInfo{
			RunID: run.ID,
			At:    run.StartedAt,
		}

		if saveErr := s.repository.Save(ctx, doc); saveErr != nil {
			log.Printf("Failed to archive character %d: %v", ref.ID, saveErr)
			output.Failed = append(output.Failed, &FailedCharacter{
				CharacterID: ref.ID,
				Player:      ref.Player,
				Err:         saveErr,
			})
			continue
		}

		log.Printf("Archived %s (ID: %d)", doc.Name, doc.ID)
		output.Saved = append(output.Saved, doc)
	}

	if err := s.repository.SaveCombined(ctx, campaign, output.Saved); err != nil {
		return nil, errors.Wrapf(err, "failed to save combined file for campaign %d", input.CampaignID).
			WithMeta("campaign_id", input.CampaignID)
	}

	run.FinishedAt = s.timeProvider.Now()
	log.Printf("Campaign %d: archived %d of %d characters", input.CampaignID, len(output.Saved), len(refs))

	return output, nil
}

func (s *service) ScrapeAll(ctx context.Context, input *ScrapeAllInput) (*ScrapeAllOutput, error) {
	listOutput, err := s.ListCampaigns(ctx, &ListCampaignsInput{})
	if err != nil {
		return nil, err
	}

	output := &ScrapeAllOutput{}

	for _, campaign := range listOutput.Campaigns {
		log.Printf("Campaign: %s (ID: %d)", campaign.Name, campaign.ID)

		campaignOutput, scrapeErr := s.ScrapeCampaign(ctx, &ScrapeCampaignInput{
			CampaignID:   campaign.ID,
			CampaignName: campaign.Name,
		})
		if scrapeErr != nil {
			// Keep going when one campaign fails
			log.Printf("Failed to scrape campaign %s: %v", campaign.Name, scrapeErr)
			output.Failed = append(output.Failed, &FailedCampaign{
				Campaign: campaign,
				Err:      scrapeErr,
			})
			continue
		}

		output.Campaigns = append(output.Campaigns, campaignOutput)
	}

	return output, nil
}
