package documents

//go:generate mockgen -destination=mock/mock.go -package=mockdocuments -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/beyond-sheets/internal/domain/character"
)

// Repository defines the interface for the character document archive
type Repository interface {
	// Save stores a single character document
	Save(ctx context.Context, doc *character.Document) error

	// SaveCombined stores a campaign's documents as one combined entry
	SaveCombined(ctx context.Context, campaign *character.CampaignRef, docs []*character.Document) error

	// Get retrieves a character document by its character ID
	Get(ctx context.Context, id int) (*character.Document, error)

	// List retrieves every archived character document
	List(ctx context.Context) ([]*character.Document, error)

	// FindByName resolves a partial, case-insensitive character name to a
	// single archived document
	FindByName(ctx context.Context, query string) (*character.Document, error)
}
