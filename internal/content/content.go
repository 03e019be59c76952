// Package content loads and flattens the portfolio content bundle that
// feeds ingestion.
package content

import (
	"fmt"
	"strings"

	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/logger"
)

// Source is one flattened content source: a provenance tag, the raw text
// to chunk, and the metadata every chunk from this source will carry.
type Source struct {
	Name     string
	Text     string
	Metadata map[string]string
}

// Sources flattens a bundle into the deterministic source sequence the
// ingestion pipeline iterates: documents, then the fixed scalar fields,
// then repository metadata, then video metadata. Sources without usable
// text are omitted.
func Sources(bundle *domain.ContentBundle) []Source {
	if bundle == nil {
		return nil
	}

	var sources []Source

	for _, doc := range bundle.Documents {
		if strings.TrimSpace(doc.RawText) == "" || doc.Filename == "" {
			logger.Warn("content: skipping document with missing filename or text")
			continue
		}
		sources = append(sources, Source{
			Name: "document_" + doc.Filename,
			Text: doc.RawText,
			Metadata: map[string]string{
				"type":     "document",
				"filename": doc.Filename,
			},
		})
	}

	for _, field := range bundle.ScalarFields() {
		if strings.TrimSpace(field.Text) == "" {
			continue
		}
		sources = append(sources, Source{
			Name: field.Name,
			Text: field.Text,
			Metadata: map[string]string{
				"type":  "portfolio",
				"field": field.Name,
			},
		})
	}

	for _, repo := range bundle.Repositories {
		if repo.Name == "" {
			logger.Warn("content: skipping repository without a name")
			continue
		}
		sources = append(sources, Source{
			Name: "github",
			Text: flattenRepository(repo),
			Metadata: map[string]string{
				"type": "github",
				"repo": repo.Name,
			},
		})
	}

	for _, video := range bundle.Videos {
		if video.Title == "" {
			logger.Warn("content: skipping video without a title")
			continue
		}
		sources = append(sources, Source{
			Name: "youtube",
			Text: flattenVideo(video),
			Metadata: map[string]string{
				"type":  "youtube",
				"video": video.URL,
			},
		})
	}

	return sources
}

// flattenRepository renders repository metadata as prose so the chunker
// and embedder treat it like any other text.
func flattenRepository(repo domain.RepositoryMeta) string {
	description := repo.Description
	if description == "" {
		description = "No description"
	}
	text := fmt.Sprintf("Repository: %s. Description: %s.", repo.Name, description)
	if len(repo.Languages) > 0 {
		text += fmt.Sprintf(" Languages: %s.", strings.Join(repo.Languages, ", "))
	}
	if repo.URL != "" {
		text += fmt.Sprintf(" URL: %s.", repo.URL)
	}
	return text
}

// flattenVideo renders video metadata as prose.
func flattenVideo(video domain.VideoMeta) string {
	text := fmt.Sprintf("Video: %s.", video.Title)
	if video.Description != "" {
		text += fmt.Sprintf(" Description: %s.", video.Description)
	}
	if video.URL != "" {
		text += fmt.Sprintf(" URL: %s.", video.URL)
	}
	return text
}
