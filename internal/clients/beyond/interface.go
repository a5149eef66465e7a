package beyond

//go:generate mockgen -destination=mock/mock_client.go -package=mockbeyond . Client

import (
	"context"

	"github.com/KirkDiggler/beyond-sheets/internal/domain/character"
)

// Client talks to the D&D Beyond services: the character service for
// full documents, the campaigns API, and the campaign pages that list
// who plays in them.
type Client interface {
	// GetCharacter fetches one character document by id.
	GetCharacter(ctx context.Context, id int) (*character.Document, error)

	// ListCampaigns returns the account's active campaigns.
	ListCampaigns(ctx context.Context) ([]*Campaign, error)

	// ListCampaignCharacters discovers the characters on a campaign
	// page, including other players' characters.
	ListCampaignCharacters(ctx context.Context, campaignID int) ([]*CharacterRef, error)
}

// Campaign is one active campaign on the account.
type Campaign struct {
	ID         int
	Name       string
	DMUsername string
	URL        string
}

// CharacterRef is a character discovered on a campaign page. Name and
// Player fall back to "Unknown" when the page markup does not carry
// them near the character link.
type CharacterRef struct {
	ID     int
	Name   string
	Player string
	URL    string
}
