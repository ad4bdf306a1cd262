package accounts

import "github.com/growthlens/server/growthlens/accounts"

// body of the YouTube connect request. URL accepts a raw channel id,
// a full channel URL, an @handle or a legacy custom URL.
type ConnectYouTubeRequest struct {
	URL string `json:"url" binding:"required"`
}

type AccountResponse struct {
	Account *accounts.Account `json:"account"`
}

type AccountsResponse struct {
	Accounts []accounts.Account `json:"accounts"`
}

// where the client sends the user to grant TikTok access
type TikTokConnectResponse struct {
	AuthURL string `json:"auth_url"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
