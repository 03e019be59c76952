package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBundleFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "content.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestIngestCmd_NothingToIngest(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to ingest")
}

func TestIngestCmd_FromContentFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeBundleFile(t, `{
		"about": "A paragraph about a long and storied engineering career in infrastructure."
	}`)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "--content", path})
	defer func() {
		rootCmd.SetArgs(nil)
		ingestContentFile = ""
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Ingested 1 chunks from 1 sources")

	count, err := chunkStore.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIngestCmd_MissingContentFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "--content", filepath.Join(t.TempDir(), "absent.json")})
	defer func() {
		rootCmd.SetArgs(nil)
		ingestContentFile = ""
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}

func TestIngestCmd_FreshClearsFirst(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, seedTestChunks())

	path := writeBundleFile(t, `{
		"about": "A paragraph about a long and storied engineering career in infrastructure."
	}`)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "--fresh", "--content", path})
	defer func() {
		rootCmd.SetArgs(nil)
		ingestContentFile = ""
		ingestFresh = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Cleared existing chunks.")

	count, err := chunkStore.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIngestCmd_AppendsWithoutFresh(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, seedTestChunks())

	path := writeBundleFile(t, `{
		"about": "A paragraph about a long and storied engineering career in infrastructure."
	}`)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "--content", path})
	defer func() {
		rootCmd.SetArgs(nil)
		ingestContentFile = ""
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)

	count, err := chunkStore.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
