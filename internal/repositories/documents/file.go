package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KirkDiggler/beyond-sheets/internal/domain/character"
	"github.com/KirkDiggler/beyond-sheets/internal/errors"
)

// combinedPrefix marks a campaign's combined file. Listing skips these
// so every character is counted once.
const combinedPrefix = "campaign_"

// DefaultArchiveDir is where the file repository writes when no
// directory is configured.
const DefaultArchiveDir = "campaigns"

// FileRepoConfig holds configuration for the file-backed repository
type FileRepoConfig struct {
	// Dir is the archive root. Defaults to DefaultArchiveDir.
	Dir string
}

// fileRepo archives documents as indented JSON, one directory per
// campaign, matching the layout the view commands read back.
type fileRepo struct {
	dir string
}

// NewFileRepository creates a file-backed document repository
func NewFileRepository(cfg *FileRepoConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("cfg cannot be nil")
	}

	dir := cfg.Dir
	if dir == "" {
		dir = DefaultArchiveDir
	}

	return &fileRepo{dir: dir}, nil
}

// Save writes one character document to its campaign directory
func (r *fileRepo) Save(ctx context.Context, doc *character.Document) error {
	if doc == nil {
		return errors.InvalidArgument("document cannot be nil")
	}
	if doc.ID == 0 {
		return errors.InvalidArgument("document ID is required")
	}

	dir, err := r.ensureCampaignDir(doc.Campaign)
	if err != nil {
		return err
	}

	name := doc.Name
	if name == "" {
		name = fmt.Sprintf("Character_%d", doc.ID)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%d.json", sanitizeName(name), doc.ID))
	return writeJSON(path, doc)
}

// SaveCombined writes the campaign's characters as a single array file
func (r *fileRepo) SaveCombined(ctx context.Context, campaign *character.CampaignRef, docs []*character.Document) error {
	if campaign == nil {
		return errors.InvalidArgument("campaign cannot be nil")
	}
	if campaign.ID == 0 {
		return errors.InvalidArgument("campaign ID is required")
	}

	dir, err := r.ensureCampaignDir(campaign)
	if err != nil {
		return err
	}

	// An empty campaign still gets a combined file, as an empty array.
	if docs == nil {
		docs = []*character.Document{}
	}

	path := filepath.Join(dir, fmt.Sprintf("campaign_%d_characters.json", campaign.ID))
	return writeJSON(path, docs)
}

// Get retrieves an archived character document by ID
func (r *fileRepo) Get(ctx context.Context, id int) (*character.Document, error) {
	if id == 0 {
		return nil, errors.InvalidArgument("character ID is required")
	}

	paths, err := r.documentPaths()
	if err != nil {
		return nil, err
	}

	suffix := fmt.Sprintf("_%d.json", id)
	for _, path := range paths {
		if !strings.HasSuffix(filepath.Base(path), suffix) {
			continue
		}
		doc, err := readDocument(path)
		if err != nil {
			return nil, err
		}
		if doc.ID != id {
			continue
		}
		return doc, nil
	}

	return nil, errors.NotFoundf("character with ID %d is not archived", id).
		WithMeta("character_id", id)
}

// List retrieves every archived character document
func (r *fileRepo) List(ctx context.Context) ([]*character.Document, error) {
	paths, err := r.documentPaths()
	if err != nil {
		return nil, err
	}

	docs := make([]*character.Document, 0, len(paths))
	for _, path := range paths {
		doc, err := readDocument(path)
		if err != nil {
			// Skip files that can't be loaded
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// FindByName resolves a partial name against the archive
func (r *fileRepo) FindByName(ctx context.Context, query string) (*character.Document, error) {
	docs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return findByName(docs, query)
}

// ensureCampaignDir resolves and creates the directory a campaign's
// files live in. Documents without campaign info go in the archive root.
func (r *fileRepo) ensureCampaignDir(campaign *character.CampaignRef) (string, error) {
	dir := r.dir
	if campaign != nil {
		dir = filepath.Join(r.dir, campaignSlug(campaign))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}
	return dir, nil
}

// documentPaths walks the archive for per-character files, skipping the
// combined campaign files.
func (r *fileRepo) documentPaths() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		base := d.Name()
		if !strings.HasSuffix(base, ".json") || strings.HasPrefix(base, combinedPrefix) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if os.IsNotExist(err) {
		// Nothing archived yet
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to walk archive directory: %w", err)
	}

	sort.Strings(paths)
	return paths, nil
}

// campaignSlug is the lowercased campaign name with spaces and slashes
// replaced, or campaign_<id> when the name is missing.
func campaignSlug(campaign *character.CampaignRef) string {
	if campaign.Name == "" {
		return fmt.Sprintf("campaign_%d", campaign.ID)
	}
	return strings.ToLower(sanitizeName(campaign.Name))
}

// sanitizeName makes a character or campaign name safe for a filename
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ReplaceAll(name, "/", "_")
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func readDocument(path string) (*character.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := character.ParseDocument(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return doc, nil
}
