package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/beyond-sheets/internal/domain/character"
	"github.com/KirkDiggler/beyond-sheets/internal/errors"
	"github.com/KirkDiggler/beyond-sheets/internal/testutils"
)

type RedisRepoTestSuite struct {
	suite.Suite
	mockClient *redis.Client
	mock       redismock.ClientMock
	repo       Repository
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.mockClient, s.mock = redismock.NewClientMock()

	repo, err := NewRedisRepository(&RedisRepoConfig{Client: s.mockClient})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func testDocument(id int, name string) *character.Document {
	return &character.Document{
		ID:       id,
		Name:     name,
		Campaign: &character.CampaignRef{ID: 501, Name: "Sunken Vale"},
	}
}

func (s *RedisRepoTestSuite) TestSave() {
	ctx := context.Background()
	doc := testDocument(7, "Tavren Ashfall")

	expectedData, err := json.Marshal(doc)
	s.Require().NoError(err)

	// Happy path
	s.mock.ExpectSet("document:7", string(expectedData), 0).SetVal("OK")
	s.mock.ExpectSAdd("documents", "7").SetVal(1)
	s.mock.ExpectSAdd("campaign:501:documents", "7").SetVal(1)

	err = s.repo.Save(ctx, doc)
	s.NoError(err)

	// Input validation
	err = s.repo.Save(ctx, nil)
	s.Error(err)

	err = s.repo.Save(ctx, &character.Document{Name: "no id"})
	s.Error(err)
}

func (s *RedisRepoTestSuite) TestSave_WithoutCampaign() {
	ctx := context.Background()
	doc := &character.Document{ID: 9, Name: "Stray"}

	expectedData, err := json.Marshal(doc)
	s.Require().NoError(err)

	// No campaign annotation means no campaign index entry
	s.mock.ExpectSet("document:9", string(expectedData), 0).SetVal("OK")
	s.mock.ExpectSAdd("documents", "9").SetVal(1)

	err = s.repo.Save(ctx, doc)
	s.NoError(err)
}

func (s *RedisRepoTestSuite) TestSaveCombined() {
	ctx := context.Background()
	campaign := &character.CampaignRef{ID: 501, Name: "Sunken Vale"}
	docs := []*character.Document{testDocument(7, "Tavren Ashfall")}

	expectedData, err := json.Marshal(docs)
	s.Require().NoError(err)

	// Happy path
	s.mock.ExpectSet("campaign:501:characters", string(expectedData), 0).SetVal("OK")

	err = s.repo.SaveCombined(ctx, campaign, docs)
	s.NoError(err)

	// A campaign with no surviving characters still writes an empty array
	s.mock.ExpectSet("campaign:501:characters", "[]", 0).SetVal("OK")

	err = s.repo.SaveCombined(ctx, campaign, nil)
	s.NoError(err)

	// Dependency error
	s.mock.ExpectSet("campaign:501:characters", string(expectedData), 0).SetErr(fmt.Errorf("redis error"))

	err = s.repo.SaveCombined(ctx, campaign, docs)
	s.Error(err)

	// Input validation
	s.Error(s.repo.SaveCombined(ctx, nil, docs))
	s.Error(s.repo.SaveCombined(ctx, &character.CampaignRef{}, docs))
}

func (s *RedisRepoTestSuite) TestGet() {
	ctx := context.Background()
	doc := testDocument(7, "Tavren Ashfall")

	jsonData, err := json.Marshal(doc)
	s.Require().NoError(err)

	// Happy path
	s.mock.ExpectGet("document:7").SetVal(string(jsonData))

	got, err := s.repo.Get(ctx, 7)
	s.NoError(err)
	s.Equal(7, got.ID)
	s.Equal("Tavren Ashfall", got.Name)
	s.Equal(501, got.Campaign.ID)

	// Missing key
	s.mock.ExpectGet("document:404").RedisNil()

	_, err = s.repo.Get(ctx, 404)
	s.Error(err)
	s.True(errors.IsNotFound(err))

	// Dependency error stays distinct from a missing document
	s.mock.ExpectGet("document:7").SetErr(fmt.Errorf("redis error"))

	_, err = s.repo.Get(ctx, 7)
	s.Error(err)
	s.False(errors.IsNotFound(err))

	// Input validation
	_, err = s.repo.Get(ctx, 0)
	s.Error(err)
}

func (s *RedisRepoTestSuite) TestList() {
	ctx := context.Background()
	doc := testDocument(7, "Tavren Ashfall")

	jsonData, err := json.Marshal(doc)
	s.Require().NoError(err)

	// Index entries that aren't character IDs are skipped
	s.mock.ExpectSMembers("documents").SetVal([]string{"7", "not-a-number"})
	s.mock.ExpectGet("document:7").SetVal(string(jsonData))

	docs, err := s.repo.List(ctx)
	s.NoError(err)
	s.Len(docs, 1)
	s.Equal("Tavren Ashfall", docs[0].Name)

	// Dependency error
	s.mock.ExpectSMembers("documents").SetErr(fmt.Errorf("redis error"))

	_, err = s.repo.List(ctx)
	s.Error(err)
}

func (s *RedisRepoTestSuite) TestFindByName() {
	ctx := context.Background()
	doc := testDocument(7, "Tavren Ashfall")

	jsonData, err := json.Marshal(doc)
	s.Require().NoError(err)

	s.mock.ExpectSMembers("documents").SetVal([]string{"7"})
	s.mock.ExpectGet("document:7").SetVal(string(jsonData))

	got, err := s.repo.FindByName(ctx, "tavren")
	s.NoError(err)
	s.Equal(7, got.ID)

	s.mock.ExpectSMembers("documents").SetVal([]string{"7"})
	s.mock.ExpectGet("document:7").SetVal(string(jsonData))

	_, err = s.repo.FindByName(ctx, "nobody")
	s.Error(err)
	s.True(errors.IsNotFound(err))
}

// TestRedisRepository_EndToEnd runs the repository against an in-memory
// Redis, where concurrent reads and real set semantics apply.
func TestRedisRepository_EndToEnd(t *testing.T) {
	client := testutils.CreateTestRedisClient(t)
	repo, err := NewRedisRepository(&RedisRepoConfig{Client: client})
	require.NoError(t, err)

	ctx := context.Background()
	campaign := &character.CampaignRef{ID: 501, Name: "Sunken Vale"}
	tavren := &character.Document{ID: 1, Name: "Tavren Ashfall", Campaign: campaign}
	ashara := &character.Document{ID: 2, Name: "Ashara", Campaign: campaign}

	require.NoError(t, repo.Save(ctx, tavren))
	require.NoError(t, repo.Save(ctx, ashara))
	require.NoError(t, repo.SaveCombined(ctx, campaign, []*character.Document{tavren, ashara}))

	docs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2, "the combined entry must not show up as a character")
	assert.Equal(t, "Tavren Ashfall", docs[0].Name)
	assert.Equal(t, "Ashara", docs[1].Name)

	got, err := repo.FindByName(ctx, "ashara")
	require.NoError(t, err)
	assert.Equal(t, 2, got.ID)

	_, err = repo.FindByName(ctx, "ash")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Equal(t, []string{"Ashara", "Tavren Ashfall"}, errors.GetMeta(err)["candidates"])
}

func TestRedisRepository_List_SkipsJunkIndexMembers(t *testing.T) {
	client := testutils.CreateTestRedisClient(t)
	repo, err := NewRedisRepository(&RedisRepoConfig{Client: client})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, client.SAdd(ctx, "documents", "not-a-number").Err())
	require.NoError(t, repo.Save(ctx, &character.Document{ID: 9, Name: "Pip"}))

	docs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Pip", docs[0].Name)
}
