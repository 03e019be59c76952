package content

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/logger"
)

// bundleFile mirrors domain.ContentBundle with loosely typed fields so a
// malformed section degrades to skipping that section instead of failing
// the whole file.
type bundleFile struct {
	About          json.RawMessage `json:"about"`
	Skills         json.RawMessage `json:"skills"`
	Experience     json.RawMessage `json:"experience"`
	Education      json.RawMessage `json:"education"`
	Projects       json.RawMessage `json:"projects"`
	Certifications json.RawMessage `json:"certifications"`
	Contact        json.RawMessage `json:"contact"`

	Documents    json.RawMessage `json:"documents"`
	Repositories json.RawMessage `json:"repositories"`
	Videos       json.RawMessage `json:"videos"`
}

// LoadBundle reads a content bundle from a JSON file. Fields with an
// unexpected shape are skipped with a warning; only an unreadable or
// non-JSON file is an error.
func LoadBundle(path string) (*domain.ContentBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	return ParseBundle(data)
}

// ParseBundle decodes bundle JSON, recovering from per-field shape errors.
func ParseBundle(data []byte) (*domain.ContentBundle, error) {
	var file bundleFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parse content bundle: %v", domain.ErrInvalidInput, err)
	}

	bundle := &domain.ContentBundle{
		About:          scalarField("about", file.About),
		Skills:         scalarField("skills", file.Skills),
		Experience:     scalarField("experience", file.Experience),
		Education:      scalarField("education", file.Education),
		Projects:       scalarField("projects", file.Projects),
		Certifications: scalarField("certifications", file.Certifications),
		Contact:        scalarField("contact", file.Contact),
	}

	if file.Documents != nil {
		if err := json.Unmarshal(file.Documents, &bundle.Documents); err != nil {
			logger.Warn("content: skipping malformed documents field: %v", err)
		}
	}
	if file.Repositories != nil {
		if err := json.Unmarshal(file.Repositories, &bundle.Repositories); err != nil {
			logger.Warn("content: skipping malformed repositories field: %v", err)
		}
	}
	if file.Videos != nil {
		if err := json.Unmarshal(file.Videos, &bundle.Videos); err != nil {
			logger.Warn("content: skipping malformed videos field: %v", err)
		}
	}

	return bundle, nil
}

// scalarField decodes a prose field. Plain strings pass through; any
// structured value is serialised back to text so it can still be chunked;
// anything undecodable is skipped.
func scalarField(name string, raw json.RawMessage) string {
	if raw == nil {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	// Structured value: render key-value pairs or list items as prose.
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Warn("content: skipping malformed %s field", name)
		return ""
	}
	return stringify(v)
}

// stringify flattens decoded JSON into readable prose.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%t", t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := stringify(item); s != "" {
				parts = append(parts, s)
			}
		}
		return joinSentences(parts)
	case map[string]any:
		// Sorted keys keep ingestion deterministic for a given bundle.
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			if s := stringify(t[k]); s != "" {
				parts = append(parts, fmt.Sprintf("%s: %s", k, s))
			}
		}
		return joinSentences(parts)
	default:
		return ""
	}
}

func joinSentences(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " "
		}
		out += p
		if len(p) > 0 && p[len(p)-1] != '.' {
			out += "."
		}
	}
	return out
}
