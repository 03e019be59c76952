package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-labs/folio-cli/internal/core/domain"
)

func TestParseBundle_PlainStrings(t *testing.T) {
	data := []byte(`{
		"about": "I build things.",
		"skills": "Go, SQL",
		"contact": "me@example.com"
	}`)

	bundle, err := ParseBundle(data)

	require.NoError(t, err)
	assert.Equal(t, "I build things.", bundle.About)
	assert.Equal(t, "Go, SQL", bundle.Skills)
	assert.Equal(t, "me@example.com", bundle.Contact)
	assert.Empty(t, bundle.Experience)
}

func TestParseBundle_StructuredScalarField(t *testing.T) {
	data := []byte(`{
		"skills": ["Go", "SQL", "Kubernetes"],
		"contact": {"email": "me@example.com", "city": "Berlin"}
	}`)

	bundle, err := ParseBundle(data)

	require.NoError(t, err)
	assert.Equal(t, "Go. SQL. Kubernetes.", bundle.Skills)
	// Map keys render sorted so a given bundle always parses the same way.
	assert.Equal(t, "city: Berlin. email: me@example.com.", bundle.Contact)
}

func TestParseBundle_Documents(t *testing.T) {
	data := []byte(`{
		"documents": [
			{"filename": "resume.pdf", "raw_text": "resume contents"}
		]
	}`)

	bundle, err := ParseBundle(data)

	require.NoError(t, err)
	require.Len(t, bundle.Documents, 1)
	assert.Equal(t, "resume.pdf", bundle.Documents[0].Filename)
	assert.Equal(t, "resume contents", bundle.Documents[0].RawText)
}

func TestParseBundle_RepositoriesAndVideos(t *testing.T) {
	data := []byte(`{
		"repositories": [
			{"name": "folio", "description": "portfolio assistant", "languages": ["Go"], "url": "https://github.com/u/folio"}
		],
		"videos": [
			{"title": "Talk", "description": "conference talk", "url": "https://youtube.com/watch?v=abc"}
		]
	}`)

	bundle, err := ParseBundle(data)

	require.NoError(t, err)
	require.Len(t, bundle.Repositories, 1)
	assert.Equal(t, domain.RepositoryMeta{
		Name:        "folio",
		Description: "portfolio assistant",
		Languages:   []string{"Go"},
		URL:         "https://github.com/u/folio",
	}, bundle.Repositories[0])
	require.Len(t, bundle.Videos, 1)
	assert.Equal(t, "Talk", bundle.Videos[0].Title)
}

func TestParseBundle_MalformedSectionIsSkipped(t *testing.T) {
	// documents has the wrong shape; the rest of the bundle still loads.
	data := []byte(`{
		"about": "still loads",
		"documents": "not an array"
	}`)

	bundle, err := ParseBundle(data)

	require.NoError(t, err)
	assert.Equal(t, "still loads", bundle.About)
	assert.Empty(t, bundle.Documents)
}

func TestParseBundle_InvalidJSON(t *testing.T) {
	bundle, err := ParseBundle([]byte("{not json"))

	assert.Nil(t, bundle)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoadBundle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"about": "from disk"}`), 0o600))

	bundle, err := LoadBundle(path)

	require.NoError(t, err)
	assert.Equal(t, "from disk", bundle.About)
}

func TestLoadBundle_MissingFile(t *testing.T) {
	bundle, err := LoadBundle(filepath.Join(t.TempDir(), "absent.json"))

	assert.Nil(t, bundle)
	assert.Error(t, err)
}
