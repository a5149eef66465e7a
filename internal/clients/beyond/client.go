package beyond

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/KirkDiggler/beyond-sheets/internal/domain/character"
	"github.com/KirkDiggler/beyond-sheets/internal/errors"
)

// Default endpoints and request settings. Config fields override them.
const (
	DefaultBaseURL             = "https://www.dndbeyond.com"
	DefaultAuthURL             = "https://auth-service.dndbeyond.com/v1/cobalt-token"
	DefaultCharacterServiceURL = "https://character-service.dndbeyond.com"
	DefaultUserAgent           = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
	DefaultTimeout             = 30 * time.Second
)

var (
	characterIDPattern = regexp.MustCompile(`/characters/(\d+)`)
	playerPattern      = regexp.MustCompile(`Player:\s*([^\n]+)`)
)

type client struct {
	httpClient          *http.Client
	session             string
	baseURL             string
	authURL             string
	characterServiceURL string
	userAgent           string

	// The cobalt token is fetched once and reused. The mutex also
	// serializes the first fetch across goroutines.
	mu    sync.Mutex
	token string
}

// Config configures the client. Session is the CobaltSession cookie
// value and is the only required field.
type Config struct {
	HttpClient          *http.Client
	Session             string
	BaseURL             string
	AuthURL             string
	CharacterServiceURL string
	UserAgent           string
}

// New creates a D&D Beyond client.
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("cfg is required")
	}
	if cfg.Session == "" {
		return nil, errors.Unauthenticated("a CobaltSession cookie is required")
	}

	httpClient := cfg.HttpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	c := &client{
		httpClient:          httpClient,
		session:             cfg.Session,
		baseURL:             cfg.BaseURL,
		authURL:             cfg.AuthURL,
		characterServiceURL: cfg.CharacterServiceURL,
		userAgent:           cfg.UserAgent,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.authURL == "" {
		c.authURL = DefaultAuthURL
	}
	if c.characterServiceURL == "" {
		c.characterServiceURL = DefaultCharacterServiceURL
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}

	return c, nil
}

func (c *client) newRequest(ctx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request for %s", url)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: "CobaltSession", Value: c.session})

	return req, nil
}

// cobaltToken exchanges the session cookie for a bearer token. The
// token is cached for the lifetime of the client.
func (c *client) cobaltToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" {
		return c.token, nil
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.authURL)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUnavailable, "auth service request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Unauthenticatedf("auth service returned status %d, the session cookie may have expired", resp.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUnavailable, "auth service returned an unreadable response")
	}
	if body.Token == "" {
		return "", errors.Unauthenticated("auth service returned no token")
	}

	c.token = body.Token
	return c.token, nil
}

func (c *client) GetCharacter(ctx context.Context, id int) (*character.Document, error) {
	token, err := c.cobaltToken(ctx)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/character/v5/character/%d", c.characterServiceURL, id)
	req, err := c.newRequest(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "character service request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, errors.Unauthenticatedf("character service denied access to character %d", id)
	case resp.StatusCode != http.StatusOK:
		return nil, errors.Unavailablef("character service returned status %d for character %d", resp.StatusCode, id)
	}

	var envelope struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeMalformedDocument, "character service response is not valid JSON")
	}
	if !envelope.Success {
		return nil, errors.Unavailablef("character service error for character %d: %s", id, envelope.Message)
	}

	doc, err := character.ParseDocument(envelope.Data)
	if err != nil {
		return nil, errors.Wrapf(err, "character %d", id)
	}

	enrichStatNames(doc)
	return doc, nil
}

// enrichStatNames fills in stat names from the fixed id mapping, since
// the wire leaves them null.
func enrichStatNames(doc *character.Document) {
	for _, stats := range [][]*character.Stat{doc.Stats, doc.BonusStats} {
		for _, stat := range stats {
			if stat == nil {
				continue
			}
			if ability, ok := character.AbilityByStatID(stat.ID); ok {
				stat.Name = ability.FullName()
			}
		}
	}
}

func (c *client) ListCampaigns(ctx context.Context) ([]*Campaign, error) {
	token, err := c.cobaltToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+"/api/campaign/stt/active-campaigns")
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "campaigns request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Unavailablef("campaigns endpoint returned status %d", resp.StatusCode)
	}

	var envelope struct {
		Status string `json:"status"`
		Data   []struct {
			ID         int    `json:"id"`
			Name       string `json:"name"`
			DMUsername string `json:"dmUsername"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "campaigns response is not valid JSON")
	}
	if envelope.Status != "success" {
		return nil, errors.Unavailablef("campaigns endpoint returned status %q", envelope.Status)
	}

	campaigns := make([]*Campaign, 0, len(envelope.Data))
	for _, camp := range envelope.Data {
		if camp.ID == 0 {
			continue
		}
		campaigns = append(campaigns, &Campaign{
			ID:         camp.ID,
			Name:       camp.Name,
			DMUsername: camp.DMUsername,
			URL:        fmt.Sprintf("%s/campaigns/%d", c.baseURL, camp.ID),
		})
	}

	return campaigns, nil
}

func (c *client) ListCampaignCharacters(ctx context.Context, campaignID int) ([]*CharacterRef, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("%s/campaigns/%d", c.baseURL, campaignID))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "campaign page request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Unavailablef("campaign page returned status %d for campaign %d", resp.StatusCode, campaignID)
	}

	html, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read campaign page")
	}

	return parseCampaignPage(string(html), c.baseURL)
}

// parseCampaignPage pulls every /characters/{id} reference out of the
// page, in first-seen order with duplicates dropped, and reads each
// character's name and player from the surrounding card markup.
func parseCampaignPage(html, baseURL string) ([]*CharacterRef, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse campaign page")
	}

	var ids []string
	seen := make(map[string]bool)
	for _, match := range characterIDPattern.FindAllStringSubmatch(html, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			ids = append(ids, match[1])
		}
	}

	refs := make([]*CharacterRef, 0, len(ids))
	for _, rawID := range ids {
		id, err := strconv.Atoi(rawID)
		if err != nil {
			continue
		}

		ref := &CharacterRef{
			ID:     id,
			Name:   "Unknown",
			Player: "Unknown",
			URL:    fmt.Sprintf("%s/characters/%d", baseURL, id),
		}

		anchor := doc.Find(fmt.Sprintf(`a[href*="/characters/%s"]`, rawID)).First()
		if anchor.Length() > 0 {
			fillFromCard(anchor, ref)
		}

		refs = append(refs, ref)
	}

	return refs, nil
}

// fillFromCard walks up from a character link looking for the card
// that carries the character's display name and player label.
func fillFromCard(anchor *goquery.Selection, ref *CharacterRef) {
	foundName := false
	foundPlayer := false

	for parent := anchor.Parent(); parent.Length() > 0; parent = parent.Parent() {
		if !foundName {
			primary := parent.Find(`[class*="character-info-primary"]`).First()
			if primary.Length() > 0 {
				if name := strings.TrimSpace(primary.Text()); name != "" {
					ref.Name = name
					foundName = true
				}
			}
		}

		if !foundPlayer {
			if match := playerPattern.FindStringSubmatch(parent.Text()); match != nil {
				if player := strings.TrimSpace(match[1]); player != "" {
					ref.Player = player
					foundPlayer = true
				}
			}
		}

		if foundName && foundPlayer {
			break
		}
	}
}
