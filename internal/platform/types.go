package platform

// current public metrics for a YouTube channel
type ChannelStats struct {
	ID              string
	Title           string
	Description     string
	Thumbnail       string
	SubscriberCount int64
	ViewCount       int64
	VideoCount      int64
}

// result of a TikTok OAuth code exchange or refresh-token exchange
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // seconds until the access token expires
	OpenID       string
}

// current public metrics for a TikTok account
type TikTokUserInfo struct {
	OpenID         string
	DisplayName    string
	AvatarURL      string
	FollowerCount  int64
	FollowingCount int64
	LikeCount      int64
	VideoCount     int64
}
