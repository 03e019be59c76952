package youtube

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/youtube/v3"

	"github.com/folio-labs/folio-cli/internal/core/domain"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	conn, err := New(context.Background(), "")

	assert.Nil(t, conn)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFetchVideos_RequiresChannelID(t *testing.T) {
	conn := &Connector{}

	videos, err := conn.FetchVideos(context.Background(), "")

	assert.Nil(t, videos)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUploadsFromChannels(t *testing.T) {
	tests := []struct {
		name  string
		items []*youtube.Channel
		want  string
	}{
		{name: "no items", items: nil, want: ""},
		{name: "no content details", items: []*youtube.Channel{{}}, want: ""},
		{
			name: "no related playlists",
			items: []*youtube.Channel{
				{ContentDetails: &youtube.ChannelContentDetails{}},
			},
			want: "",
		},
		{
			name: "uploads present",
			items: []*youtube.Channel{
				{ContentDetails: &youtube.ChannelContentDetails{
					RelatedPlaylists: &youtube.ChannelContentDetailsRelatedPlaylists{
						Uploads: "UUabc123",
					},
				}},
			},
			want: "UUabc123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uploadsFromChannels(tt.items))
		})
	}
}
