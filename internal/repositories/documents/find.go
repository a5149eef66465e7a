package documents

import (
	"sort"
	"strings"

	"github.com/KirkDiggler/beyond-sheets/internal/domain/character"
	"github.com/KirkDiggler/beyond-sheets/internal/errors"
)

// findByName applies the name resolution rules shared by every store:
// case-insensitive substring match, with an exact name winning outright.
func findByName(docs []*character.Document, query string) (*character.Document, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, errors.InvalidArgument("name query is required")
	}

	var matches []*character.Document
	for _, doc := range docs {
		name := strings.ToLower(doc.Name)
		if name == q {
			return doc, nil
		}
		if strings.Contains(name, q) {
			matches = append(matches, doc)
		}
	}

	switch len(matches) {
	case 0:
		return nil, errors.NotFoundf("no archived character matches '%s'", query)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, doc := range matches {
			names[i] = doc.Name
		}
		sort.Strings(names)
		return nil, errors.InvalidArgumentf("'%s' matches %d characters", query, len(matches)).
			WithMeta("candidates", names)
	}
}
