package config

type Config struct {
	SupabaseConnString string
	RedisURL           string
	JWTSecret          string
	SessionSecret      string
	YouTubeAPIKey      string
	TikTokClientKey    string
	TikTokClientSecret string
	TikTokRedirectURI  string
	BaseURL            string
	Environment        string
}
