package config

import (
	"log"
	"os"

	"github.com/siph-industry/discord-verify/src/verifyapi/data"
	"gorm.io/gorm"
)

// Config is built once at startup and never mutated afterwards; clients
// receive the values they need at construction.
type Config struct {
	Token         string
	ClientID      string
	ClientSecret  string
	RedirectURI   string
	JWTSecret     string
	AllowedOrigin string
	Port          string
	RedisURL      string
}

func Load(db *gorm.DB) Config {
	// Load settings from database
	if err := data.LoadSettings(db); err != nil {
		log.Printf("Failed to load settings: %v", err)
	}

	// Get values from database with env fallbacks
	discordToken := data.GetSetting("discord_token")
	if discordToken == "" {
		discordToken = os.Getenv("DISCORD_TOKEN")
	}

	clientID := data.GetSetting("discord_client_id")
	if clientID == "" {
		clientID = os.Getenv("DISCORD_CLIENT_ID")
	}

	clientSecret := data.GetSetting("discord_client_secret")
	if clientSecret == "" {
		clientSecret = os.Getenv("DISCORD_CLIENT_SECRET")
	}

	redirectURI := data.GetSetting("discord_redirect_uri")
	if redirectURI == "" {
		redirectURI = getenv("DISCORD_REDIRECT_URI", "https://siph-industry.com/verify-options")
	}

	jwtSecret := data.GetSetting("jwt_secret")
	if jwtSecret == "" {
		jwtSecret = os.Getenv("JWT_SECRET")
	}

	allowedOrigin := data.GetSetting("allowed_origin")
	if allowedOrigin == "" {
		allowedOrigin = getenv("ALLOWED_ORIGIN", "https://siph-industry.com")
	}

	return Config{
		Token:         discordToken,
		ClientID:      clientID,
		ClientSecret:  clientSecret,
		RedirectURI:   redirectURI,
		JWTSecret:     jwtSecret,
		AllowedOrigin: allowedOrigin,
		Port:          getenv("PORT", "5000"),
		RedisURL:      getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
