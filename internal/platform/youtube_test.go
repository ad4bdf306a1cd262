package platform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// builds a client pointed at a fake YouTube API
func newTestYouTubeClient(t *testing.T, handler http.HandlerFunc) *YouTubeClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &YouTubeClient{
		apiKey:     "test-key",
		baseURL:    server.URL,
		httpClient: server.Client(),
		limiter:    rate.NewLimiter(rate.Inf, 1),
	}
}

func TestFetchChannel_Success(t *testing.T) {
	var gotPath string

	client := newTestYouTubeClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "UCexample123", r.URL.Query().Get("id"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [{
				"id": "UCexample123",
				"snippet": {
					"title": "Example Channel",
					"description": "a channel",
					"thumbnails": {"high": {"url": "https://img.example/x.jpg"}}
				},
				"statistics": {
					"subscriberCount": "12500",
					"viewCount": "4200000",
					"videoCount": "321"
				}
			}]
		}`))
	})

	stats, err := client.FetchChannel(context.Background(), "UCexample123")

	require.NoError(t, err)
	assert.Equal(t, "/channels", gotPath)
	assert.Equal(t, "Example Channel", stats.Title)
	assert.Equal(t, "https://img.example/x.jpg", stats.Thumbnail)
	assert.Equal(t, int64(12500), stats.SubscriberCount)
	assert.Equal(t, int64(4200000), stats.ViewCount)
	assert.Equal(t, int64(321), stats.VideoCount)
}

func TestFetchChannel_NotFound(t *testing.T) {
	client := newTestYouTubeClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"items": []}`)) //nolint:errcheck
	})

	_, err := client.FetchChannel(context.Background(), "UCmissing")

	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestFetchChannel_ServerError(t *testing.T) {
	client := newTestYouTubeClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "backend"}`)) //nolint:errcheck
	})

	_, err := client.FetchChannel(context.Background(), "UCexample123")

	require.Error(t, err)
	assert.True(t, IsTransient(err), "5xx should classify as transient")
	assert.NotErrorIs(t, err, ErrChannelNotFound)
}

func TestResolveChannelID_RawID(t *testing.T) {
	// no HTTP call should happen for a raw channel id
	client := newTestYouTubeClient(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("unexpected API call")
	})

	id, err := client.ResolveChannelID(context.Background(), "UCabc123_-xyz")

	require.NoError(t, err)
	assert.Equal(t, "UCabc123_-xyz", id)
}

func TestResolveChannelID_ChannelURL(t *testing.T) {
	client := newTestYouTubeClient(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("unexpected API call")
	})

	id, err := client.ResolveChannelID(context.Background(), "https://youtube.com/channel/UCabc123")

	require.NoError(t, err)
	assert.Equal(t, "UCabc123", id)
}

func TestResolveChannelID_Handle(t *testing.T) {
	client := newTestYouTubeClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/channels", r.URL.Path)
		assert.Equal(t, "example", r.URL.Query().Get("forHandle"))

		w.Write([]byte(`{"items": [{"id": "UChandle456"}]}`)) //nolint:errcheck
	})

	id, err := client.ResolveChannelID(context.Background(), "https://youtube.com/@example")

	require.NoError(t, err)
	assert.Equal(t, "UChandle456", id)
}

func TestResolveChannelID_LegacyCustomURL(t *testing.T) {
	client := newTestYouTubeClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "somecreator", r.URL.Query().Get("q"))

		w.Write([]byte(`{"items": [{"snippet": {"channelId": "UClegacy789"}}]}`)) //nolint:errcheck
	})

	id, err := client.ResolveChannelID(context.Background(), "https://youtube.com/c/somecreator")

	require.NoError(t, err)
	assert.Equal(t, "UClegacy789", id)
}

func TestResolveChannelID_SearchFallback(t *testing.T) {
	client := newTestYouTubeClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)

		w.Write([]byte(`{"items": [{"snippet": {"channelId": "UCsearched"}}]}`)) //nolint:errcheck
	})

	id, err := client.ResolveChannelID(context.Background(), "some creator name")

	require.NoError(t, err)
	assert.Equal(t, "UCsearched", id)
}

func TestResolveChannelID_NothingMatches(t *testing.T) {
	client := newTestYouTubeClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"items": []}`)) //nolint:errcheck
	})

	_, err := client.ResolveChannelID(context.Background(), "definitely not a channel")

	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, int64(0), parseCount(""))
	assert.Equal(t, int64(0), parseCount("n/a"))
	assert.Equal(t, int64(42), parseCount("42"))
}
