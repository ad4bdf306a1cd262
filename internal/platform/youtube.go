package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
)

const (
	defaultYouTubeAPIBaseURL = "https://www.googleapis.com/youtube/v3"
)

var (
	// /channel/UCxxxx paths
	channelPathRegex = regexp.MustCompile(`channel/(UC[\w-]+)`)

	// @handle, either bare or inside a URL
	handleRegex = regexp.MustCompile(`@([\w.-]+)`)

	// legacy /c/name and /user/name custom URLs
	customPathRegex = regexp.MustCompile(`(?:c|user)/([\w-]+)`)
)

// YouTubeClient fetches public channel metrics via the YouTube Data API
type YouTubeClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// creates a YouTube client. all instances share one pooled HTTP client and
// requests are throttled so a burst of dashboard loads cannot drain API quota.
func NewYouTubeClient(apiKey string) *YouTubeClient {
	return &YouTubeClient{
		apiKey:     apiKey,
		baseURL:    defaultYouTubeAPIBaseURL,
		httpClient: platformHTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(10), 20),
	}
}

// the API returns statistics counters as decimal strings
type youtubeChannelsResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			ChannelID   string `json:"channelId"`
			Thumbnails  struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		Statistics struct {
			SubscriberCount string `json:"subscriberCount"`
			ViewCount       string `json:"viewCount"`
			VideoCount      string `json:"videoCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// fetches current title, thumbnail and counters for a channel id
func (c *YouTubeClient) FetchChannel(ctx context.Context, channelID string) (*ChannelStats, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("id", channelID)

	var data youtubeChannelsResponse
	if err := c.get(ctx, "/channels", params, &data); err != nil {
		return nil, err
	}

	if len(data.Items) == 0 {
		return nil, fmt.Errorf("channel %q: %w", channelID, ErrChannelNotFound)
	}

	item := data.Items[0]

	return &ChannelStats{
		ID:              item.ID,
		Title:           item.Snippet.Title,
		Description:     item.Snippet.Description,
		Thumbnail:       item.Snippet.Thumbnails.High.URL,
		SubscriberCount: parseCount(item.Statistics.SubscriberCount),
		ViewCount:       parseCount(item.Statistics.ViewCount),
		VideoCount:      parseCount(item.Statistics.VideoCount),
	}, nil
}

// resolves a channel id from whatever the user pasted: a raw UC id, a
// /channel/ URL, an @handle, a legacy /c/ or /user/ custom URL, or free text
// as a search fallback
func (c *YouTubeClient) ResolveChannelID(ctx context.Context, input string) (string, error) {
	value := strings.TrimSpace(input)

	if value == "" {
		return "", fmt.Errorf("empty channel identifier: %w", ErrChannelNotFound)
	}

	// already a channel id
	if strings.HasPrefix(value, "UC") && !strings.Contains(value, "/") {
		return value, nil
	}

	// direct id inside a /channel/ path
	if m := channelPathRegex.FindStringSubmatch(value); m != nil {
		return m[1], nil
	}

	// @handle lookup
	if m := handleRegex.FindStringSubmatch(value); m != nil {
		id, err := c.lookupByHandle(ctx, m[1])
		if err != nil {
			return "", err
		}

		if id != "" {
			return id, nil
		}
	}

	// legacy custom URL, resolved through search
	if m := customPathRegex.FindStringSubmatch(value); m != nil {
		id, err := c.searchChannel(ctx, m[1])
		if err != nil {
			return "", err
		}

		if id != "" {
			return id, nil
		}
	}

	// last resort: search with the raw input
	id, err := c.searchChannel(ctx, value)
	if err != nil {
		return "", err
	}

	if id == "" {
		return "", fmt.Errorf("no channel matched %q: %w", input, ErrChannelNotFound)
	}

	return id, nil
}

// resolves an @handle via the channels endpoint
func (c *YouTubeClient) lookupByHandle(ctx context.Context, handle string) (string, error) {
	params := url.Values{}
	params.Set("part", "id")
	params.Set("forHandle", handle)

	var data youtubeChannelsResponse
	if err := c.get(ctx, "/channels", params, &data); err != nil {
		return "", err
	}

	if len(data.Items) == 0 {
		return "", nil
	}

	return data.Items[0].ID, nil
}

type youtubeSearchResponse struct {
	Items []struct {
		Snippet struct {
			ChannelID string `json:"channelId"`
		} `json:"snippet"`
	} `json:"items"`
}

// finds the best-matching channel for a free-text query
func (c *YouTubeClient) searchChannel(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "channel")
	params.Set("q", query)

	var data youtubeSearchResponse
	if err := c.get(ctx, "/search", params, &data); err != nil {
		return "", err
	}

	if len(data.Items) == 0 {
		return "", nil
	}

	return data.Items[0].Snippet.ChannelID, nil
}

// performs a rate-limited GET against the YouTube Data API
func (c *YouTubeClient) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{Platform: "youtube", StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// parses a decimal counter string; missing or malformed counters read as 0
func parseCount(value string) int64 {
	if value == "" {
		return 0
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}

	return n
}
