package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	defaultTikTokAPIBaseURL = "https://open.tiktokapis.com/v2"

	tiktokUserInfoFields = "open_id,display_name,avatar_url,follower_count,following_count,likes_count,video_count"
)

// TikTokClient exchanges OAuth tokens and fetches account metrics
// via the TikTok Open API
type TikTokClient struct {
	clientKey    string
	clientSecret string
	redirectURI  string
	baseURL      string
	httpClient   *http.Client
}

// creates a TikTok client sharing the pooled HTTP client
func NewTikTokClient(clientKey, clientSecret, redirectURI string) *TikTokClient {
	return &TikTokClient{
		clientKey:    clientKey,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		baseURL:      defaultTikTokAPIBaseURL,
		httpClient:   platformHTTPClient,
	}
}

type tiktokTokenResponse struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	ExpiresIn        int64  `json:"expires_in"`
	OpenID           string `json:"open_id"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// builds the user-facing authorization URL. state is the caller's CSRF
// token and comes back on the redirect.
func (c *TikTokClient) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_key", c.clientKey)
	q.Set("scope", "user.info.basic,user.info.profile,user.info.stats")
	q.Set("response_type", "code")
	q.Set("redirect_uri", c.redirectURI)
	q.Set("state", state)

	return "https://www.tiktok.com/v2/auth/authorize/?" + q.Encode()
}

// exchanges an authorization code for an access/refresh token pair
func (c *TikTokClient) ExchangeCode(ctx context.Context, code string) (*TokenPair, error) {
	form := url.Values{}
	form.Set("client_key", c.clientKey)
	form.Set("client_secret", c.clientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", c.redirectURI)

	return c.tokenRequest(ctx, form)
}

// exchanges a refresh token for a new token pair. refresh tokens rotate,
// so the returned pair must be persisted before it is used.
func (c *TikTokClient) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	form := url.Values{}
	form.Set("client_key", c.clientKey)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	return c.tokenRequest(ctx, form)
}

// performs a token-endpoint call and classifies grant failures
func (c *TikTokClient) tokenRequest(ctx context.Context, form url.Values) (*TokenPair, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/oauth/token/",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var data tiktokTokenResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	if data.Error != "" {
		if isGrantError(data.Error) {
			return nil, fmt.Errorf("token exchange rejected (%s): %w", data.Error, ErrInvalidGrant)
		}

		return nil, &APIError{Platform: "tiktok", StatusCode: resp.StatusCode, Body: string(body)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Platform: "tiktok", StatusCode: resp.StatusCode, Body: string(body)}
	}

	if data.AccessToken == "" {
		return nil, fmt.Errorf("token response missing access_token")
	}

	return &TokenPair{
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
		ExpiresIn:    data.ExpiresIn,
		OpenID:       data.OpenID,
	}, nil
}

type tiktokUserInfoResponse struct {
	Data struct {
		User struct {
			OpenID         string `json:"open_id"`
			DisplayName    string `json:"display_name"`
			AvatarURL      string `json:"avatar_url"`
			FollowerCount  int64  `json:"follower_count"`
			FollowingCount int64  `json:"following_count"`
			LikesCount     int64  `json:"likes_count"`
			VideoCount     int64  `json:"video_count"`
		} `json:"user"`
	} `json:"data"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// fetches the account profile and counters for an access token
func (c *TikTokClient) FetchUserInfo(ctx context.Context, accessToken string) (*TikTokUserInfo, error) {
	endpoint := c.baseURL + "/user/info/?fields=" + url.QueryEscape(tiktokUserInfoFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var data tiktokUserInfoResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to decode user info response: %w", err)
	}

	if data.Error.Code != "" && data.Error.Code != "ok" {
		if isGrantError(data.Error.Code) {
			return nil, fmt.Errorf("user info rejected (%s): %w", data.Error.Code, ErrInvalidGrant)
		}

		return nil, &APIError{Platform: "tiktok", StatusCode: resp.StatusCode, Body: string(body)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Platform: "tiktok", StatusCode: resp.StatusCode, Body: string(body)}
	}

	user := data.Data.User
	if user.OpenID == "" {
		return nil, fmt.Errorf("user info response missing open_id: %w", ErrAccountNotFound)
	}

	return &TikTokUserInfo{
		OpenID:         user.OpenID,
		DisplayName:    user.DisplayName,
		AvatarURL:      user.AvatarURL,
		FollowerCount:  user.FollowerCount,
		FollowingCount: user.FollowingCount,
		LikeCount:      user.LikesCount,
		VideoCount:     user.VideoCount,
	}, nil
}

// error codes from the token and user-info endpoints that mean the grant
// itself is dead, as opposed to a transient failure
func isGrantError(code string) bool {
	switch code {
	case "invalid_grant", "access_token_invalid", "refresh_token_invalid", "token_expired":
		return true
	}

	return false
}
