package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	supabaseConnStr := os.Getenv("SUPABASE_CONNECTION_STRING")
	redisURL := os.Getenv("REDIS_URL")
	jwtSecret := os.Getenv("JWT_SECRET")
	sessionSecret := os.Getenv("SESSION_SECRET")
	youtubeKey := os.Getenv("YOUTUBE_API_KEY")
	tiktokKey := os.Getenv("TIKTOK_CLIENT_KEY")
	tiktokSecret := os.Getenv("TIKTOK_CLIENT_SECRET")
	tiktokRedirect := os.Getenv("TIKTOK_REDIRECT_URI")
	baseURL := os.Getenv("BASE_URL")
	environment := os.Getenv("ENVIRONMENT")

	if supabaseConnStr == "" {
		return nil, fmt.Errorf("SUPABASE_CONNECTION_STRING environment variable is required")
	}

	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if youtubeKey == "" {
		return nil, fmt.Errorf("YOUTUBE_API_KEY environment variable is required")
	}

	if tiktokKey == "" || tiktokSecret == "" {
		return nil, fmt.Errorf("TIKTOK_CLIENT_KEY and TIKTOK_CLIENT_SECRET environment variables are required")
	}

	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	if tiktokRedirect == "" {
		tiktokRedirect = baseURL + "/api/v1/accounts/tiktok/callback"
	}

	if environment == "" {
		environment = "development"
	}

	return &Config{
		SupabaseConnString: supabaseConnStr,
		RedisURL:           redisURL,
		JWTSecret:          jwtSecret,
		SessionSecret:      sessionSecret,
		YouTubeAPIKey:      youtubeKey,
		TikTokClientKey:    tiktokKey,
		TikTokClientSecret: tiktokSecret,
		TikTokRedirectURI:  tiktokRedirect,
		BaseURL:            baseURL,
		Environment:        environment,
	}, nil
}
