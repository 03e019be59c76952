package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/folio-labs/folio-cli/internal/core/domain"
)

var (
	searchTopK int
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Retrieve the most similar stored chunks",
	Long: `Embeds the query and ranks all stored chunks by cosine similarity.
Returns raw retrieval results without calling the language model.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top", "k", 5, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		if err := initServices(); err != nil {
			return err
		}
	}

	results, err := retrievalService.FindSimilar(cmd.Context(), args[0], searchTopK)
	if err != nil {
		if errors.Is(err, domain.ErrStorageUnavailable) {
			return fmt.Errorf("chunk store unavailable, try re-running ingest: %w", err)
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SimilarityResult) error {
	type row struct {
		Text   string  `json:"text"`
		Source string  `json:"source"`
		Score  float64 `json:"score"`
	}
	rows := make([]row, len(results))
	for i, r := range results {
		rows[i] = row{Text: r.Chunk.Text, Source: r.Chunk.Source, Score: r.Score}
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SimilarityResult) error {
	if len(results) == 0 {
		cmd.Println("No relevant chunks found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range results {
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, r.Chunk.Source, r.Score)
		cmd.Printf("      %s\n", snippet(r.Chunk.Text, 120))
	}
	return nil
}

// snippet truncates text for table display, on a rune boundary so a
// multi-byte character is never split.
func snippet(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
