package documents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/beyond-sheets/internal/domain/character"
	"github.com/KirkDiggler/beyond-sheets/internal/errors"
)

func TestInMemoryRepository_SaveAndGet(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	doc := &character.Document{ID: 7, Name: "Tavren Ashfall"}
	require.NoError(t, repo.Save(ctx, doc))

	// Mutating the original after saving must not reach the store
	doc.Name = "Renamed"

	got, err := repo.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Tavren Ashfall", got.Name)

	_, err = repo.Get(ctx, 404)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestInMemoryRepository_List(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &character.Document{ID: 30, Name: "Third"}))
	require.NoError(t, repo.Save(ctx, &character.Document{ID: 10, Name: "First"}))
	require.NoError(t, repo.Save(ctx, &character.Document{ID: 20, Name: "Second"}))

	docs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	// Listing is ordered by character ID
	assert.Equal(t, "First", docs[0].Name)
	assert.Equal(t, "Second", docs[1].Name)
	assert.Equal(t, "Third", docs[2].Name)
}

func TestInMemoryRepository_SaveCombined(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	campaign := &character.CampaignRef{ID: 501, Name: "Sunken Vale"}
	docs := []*character.Document{{ID: 1, Name: "Tavren Ashfall", Campaign: campaign}}

	require.NoError(t, repo.SaveCombined(ctx, campaign, docs))

	// The combined entry never shows up as a character
	listed, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestInMemoryRepository_Validation(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	assert.True(t, errors.IsInvalidArgument(repo.Save(ctx, nil)))
	assert.True(t, errors.IsInvalidArgument(repo.Save(ctx, &character.Document{Name: "no id"})))
	assert.True(t, errors.IsInvalidArgument(repo.SaveCombined(ctx, nil, nil)))
	assert.True(t, errors.IsInvalidArgument(repo.SaveCombined(ctx, &character.CampaignRef{}, nil)))

	_, err := repo.Get(ctx, 0)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = repo.FindByName(ctx, "")
	assert.True(t, errors.IsInvalidArgument(err))
}
