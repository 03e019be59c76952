package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/folio-labs/folio-cli/internal/connectors/github"
	"github.com/folio-labs/folio-cli/internal/connectors/youtube"
	"github.com/folio-labs/folio-cli/internal/content"
	"github.com/folio-labs/folio-cli/internal/core/domain"
)

var (
	ingestContentFile string
	ingestFresh       bool
	ingestGitHubUser  string
	ingestChannelID   string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Index portfolio content into the local store",
	Long: `Chunks, embeds and stores the portfolio content bundle. Repository
and video metadata can be pulled live from GitHub and YouTube or supplied
inside the bundle file.

The store is append-only: re-running ingest adds duplicate chunks unless
--fresh clears it first.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestContentFile, "content", "c", "", "content bundle JSON file")
	ingestCmd.Flags().BoolVar(&ingestFresh, "fresh", false, "clear the store before ingesting")
	ingestCmd.Flags().StringVar(&ingestGitHubUser, "github-user", "", "fetch repository metadata for this user")
	ingestCmd.Flags().StringVar(&ingestChannelID, "youtube-channel", "", "fetch video metadata for this channel")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}
	ctx := cmd.Context()

	bundle := &domain.ContentBundle{}
	if ingestContentFile != "" {
		loaded, err := content.LoadBundle(ingestContentFile)
		if err != nil {
			return err
		}
		bundle = loaded
	}

	if err := fetchConnectors(ctx, bundle); err != nil {
		return err
	}

	if len(content.Sources(bundle)) == 0 {
		return errors.New("nothing to ingest: supply --content, --github-user or --youtube-channel")
	}

	if ingestFresh {
		if err := ingestService.Reset(ctx); err != nil {
			return err
		}
		cmd.Println("Cleared existing chunks.")
	}

	report, err := ingestService.Ingest(ctx, bundle)
	if err != nil {
		if errors.Is(err, domain.ErrModelUnavailable) {
			return fmt.Errorf("embedding model failed to initialise: %w", err)
		}
		return err
	}

	cmd.Printf("Ingested %d chunks from %d sources", report.ChunksStored, report.FieldsProcessed)
	if report.ChunksSkipped > 0 {
		cmd.Printf(" (%d skipped)", report.ChunksSkipped)
	}
	cmd.Println()
	return nil
}

// fetchConnectors enriches the bundle with live repository and video
// metadata when requested. Bundle-supplied entries win: connectors only
// fill fields the file left empty.
func fetchConnectors(ctx context.Context, bundle *domain.ContentBundle) error {
	user := ingestGitHubUser
	if user == "" {
		user = cfg.GitHub.User
	}
	if user != "" && len(bundle.Repositories) == 0 {
		conn := github.New(ctx, githubToken())
		repos, err := conn.FetchRepositories(ctx, user)
		if err != nil {
			return fmt.Errorf("fetch github repositories: %w", err)
		}
		bundle.Repositories = repos
	}

	channel := ingestChannelID
	if channel == "" {
		channel = cfg.YouTube.ChannelID
	}
	if channel != "" && len(bundle.Videos) == 0 {
		conn, err := youtube.New(ctx, youtubeAPIKey())
		if err != nil {
			return fmt.Errorf("youtube connector: %w", err)
		}
		videos, err := conn.FetchVideos(ctx, channel)
		if err != nil {
			return fmt.Errorf("fetch youtube videos: %w", err)
		}
		bundle.Videos = videos
	}

	return nil
}
