package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/KirkDiggler/beyond-sheets/internal/domain/character"
	"github.com/KirkDiggler/beyond-sheets/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the document
// repository. Documents are held serialized so callers never share
// pointers with the store.
type InMemoryRepository struct {
	mu       sync.RWMutex
	docs     map[int][]byte
	combined map[int][]byte
}

// NewInMemoryRepository creates a new in-memory document repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		docs:     make(map[int][]byte),
		combined: make(map[int][]byte),
	}
}

// Save stores a single character document
func (r *InMemoryRepository) Save(ctx context.Context, doc *character.Document) error {
	if doc == nil {
		return errors.InvalidArgument("document cannot be nil")
	}
	if doc.ID == 0 {
		return errors.InvalidArgument("document ID is required")
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.docs[doc.ID] = jsonData
	return nil
}

// SaveCombined stores the campaign's characters as one combined entry
func (r *InMemoryRepository) SaveCombined(ctx context.Context, campaign *character.CampaignRef, docs []*character.Document) error {
	if campaign == nil {
		return errors.InvalidArgument("campaign cannot be nil")
	}
	if campaign.ID == 0 {
		return errors.InvalidArgument("campaign ID is required")
	}

	if docs == nil {
		docs = []*character.Document{}
	}

	jsonData, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to marshal combined documents: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.combined[campaign.ID] = jsonData
	return nil
}

// Get retrieves a character document by ID
func (r *InMemoryRepository) Get(ctx context.Context, id int) (*character.Document, error) {
	if id == 0 {
		return nil, errors.InvalidArgument("character ID is required")
	}

	r.mu.RLock()
	jsonData, exists := r.docs[id]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.NotFoundf("character with ID %d is not archived", id).
			WithMeta("character_id", id)
	}

	doc, err := character.ParseDocument(jsonData)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse document %d", id)
	}
	return doc, nil
}

// List retrieves every archived character document
func (r *InMemoryRepository) List(ctx context.Context) ([]*character.Document, error) {
	r.mu.RLock()
	ids := make([]int, 0, len(r.docs))
	for id := range r.docs {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Ints(ids)

	docs := make([]*character.Document, 0, len(ids))
	for _, id := range ids {
		doc, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// FindByName resolves a partial name against the archive
func (r *InMemoryRepository) FindByName(ctx context.Context, query string) (*character.Document, error) {
	docs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return findByName(docs, query)
}
