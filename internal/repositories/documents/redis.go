package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/beyond-sheets/internal/domain/character"
	"github.com/KirkDiggler/beyond-sheets/internal/errors"
)

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a Redis-backed document repository
func NewRedisRepository(cfg *RedisRepoConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("cfg cannot be nil")
	}
	if cfg.Client == nil {
		return nil, errors.InvalidArgument("redis client is required")
	}

	return &redisRepo{client: cfg.Client}, nil
}

// key generates the Redis key for a character document
func (r *redisRepo) key(id int) string {
	return fmt.Sprintf("document:%d", id)
}

// documentsKey is the index set of every archived character ID
func (r *redisRepo) documentsKey() string {
	return "documents"
}

// campaignDocumentsKey generates the Redis key for a campaign's character list
func (r *redisRepo) campaignDocumentsKey(campaignID int) string {
	return fmt.Sprintf("campaign:%d:documents", campaignID)
}

// campaignCombinedKey generates the Redis key for a campaign's combined archive
func (r *redisRepo) campaignCombinedKey(campaignID int) string {
	return fmt.Sprintf("campaign:%d:characters", campaignID)
}

// Save stores a single character document
func (r *redisRepo) Save(ctx context.Context, doc *character.Document) error {
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

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(doc.ID), string(jsonData), 0)
	pipe.SAdd(ctx, r.documentsKey(), strconv.Itoa(doc.ID))
	if doc.Campaign != nil && doc.Campaign.ID != 0 {
		pipe.SAdd(ctx, r.campaignDocumentsKey(doc.Campaign.ID), strconv.Itoa(doc.ID))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	return nil
}

// SaveCombined stores the campaign's characters as a single array entry
func (r *redisRepo) SaveCombined(ctx context.Context, campaign *character.CampaignRef, docs []*character.Document) error {
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

	if err := r.client.Set(ctx, r.campaignCombinedKey(campaign.ID), string(jsonData), 0).Err(); err != nil {
		return fmt.Errorf("failed to save combined documents: %w", err)
	}

	return nil
}

// Get retrieves a character document by ID
func (r *redisRepo) Get(ctx context.Context, id int) (*character.Document, error) {
	if id == 0 {
		return nil, errors.InvalidArgument("character ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err == redis.Nil {
		return nil, errors.NotFoundf("character with ID %d is not archived", id).
			WithMeta("character_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	doc, err := character.ParseDocument(jsonData)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse document %d", id)
	}

	return doc, nil
}

// List retrieves every archived character document
func (r *redisRepo) List(ctx context.Context) ([]*character.Document, error) {
	members, err := r.client.SMembers(ctx, r.documentsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list document IDs: %w", err)
	}

	ids := make([]int, 0, len(members))
	for _, member := range members {
		id, err := strconv.Atoi(member)
		if err != nil {
			// Skip index entries that aren't character IDs
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	docs := make([]*character.Document, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			doc, err := r.Get(ctx, id)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return docs, nil
}

// FindByName resolves a partial name against the archive
func (r *redisRepo) FindByName(ctx context.Context, query string) (*character.Document, error) {
	docs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return findByName(docs, query)
}
