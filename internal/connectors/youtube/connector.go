// Package youtube fetches video metadata from a channel's uploads for
// ingestion into the portfolio knowledge base.
package youtube

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/logger"
)

// maxVideos bounds how many uploads are indexed per channel.
const maxVideos = 200

// pageSize is the playlistItems page size (API maximum).
const pageSize = 50

// Connector lists a channel's uploaded videos via the YouTube Data API.
type Connector struct {
	service *youtube.Service
}

// New creates a connector with an API key.
func New(ctx context.Context, apiKey string) (*Connector, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: youtube API key is required", domain.ErrInvalidInput)
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Connector{service: service}, nil
}

// FetchVideos returns title, description and URL for the channel's
// uploads, newest first as the API returns them.
func (c *Connector) FetchVideos(ctx context.Context, channelID string) ([]domain.VideoMeta, error) {
	if channelID == "" {
		return nil, fmt.Errorf("%w: youtube channel id is required", domain.ErrInvalidInput)
	}

	uploads, err := c.uploadsPlaylist(ctx, channelID)
	if err != nil {
		return nil, err
	}

	var videos []domain.VideoMeta
	pageToken := ""
	for {
		call := c.service.PlaylistItems.List([]string{"snippet"}).
			PlaylistId(uploads).
			MaxResults(pageSize).
			PageToken(pageToken).
			Context(ctx)
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list uploads for %s: %w", channelID, err)
		}

		for _, item := range resp.Items {
			snippet := item.Snippet
			if snippet == nil || snippet.ResourceId == nil {
				continue
			}
			videos = append(videos, domain.VideoMeta{
				Title:       snippet.Title,
				Description: snippet.Description,
				URL:         "https://www.youtube.com/watch?v=" + snippet.ResourceId.VideoId,
			})
			if len(videos) >= maxVideos {
				logger.Info("youtube: fetched %d videos for %s (capped)", len(videos), channelID)
				return videos, nil
			}
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	logger.Info("youtube: fetched %d videos for %s", len(videos), channelID)
	return videos, nil
}

// uploadsPlaylist resolves the channel's uploads playlist id.
func (c *Connector) uploadsPlaylist(ctx context.Context, channelID string) (string, error) {
	resp, err := c.service.Channels.List([]string{"contentDetails"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("look up channel %s: %w", channelID, err)
	}
	uploads := uploadsFromChannels(resp.Items)
	if uploads == "" {
		return "", fmt.Errorf("%w: channel %s", domain.ErrNotFound, channelID)
	}
	return uploads, nil
}

// uploadsFromChannels pulls the uploads playlist id out of a channels
// response. ContentDetails and RelatedPlaylists are optional blocks the
// API can omit.
func uploadsFromChannels(items []*youtube.Channel) string {
	if len(items) == 0 || items[0].ContentDetails == nil {
		return ""
	}
	if items[0].ContentDetails.RelatedPlaylists == nil {
		return ""
	}
	return items[0].ContentDetails.RelatedPlaylists.Uploads
}
