// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Cache backends accepted in CACHE_BACKEND.
const (
	CacheMemory = "memory"
	CacheValkey = "valkey"
)

// DefaultVideoChannelID is the newsroom's own video channel.
const DefaultVideoChannelID = "UCnewsfrontnewsroom00000"

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Content API (headless CMS)
	ContentAPIURL      string
	ContentAPIUsername string
	ContentAPIPassword string
	ContentRevalidate  time.Duration

	// Video channel feed
	VideoAPIKey     string
	VideoChannelID  string
	VideoRevalidate time.Duration

	// Response cache
	CacheBackend   string // "memory" or "valkey"
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Site defaults for page metadata
	SiteName        string
	SiteURL         string
	SiteDescription string
	SiteImage       string

	// Presentation
	HideFeaturedImageCategories []int
	HomeFeaturedCategory        string
	HomeSections                []string

	// bcrypt hash of the secret required by the revalidation webhook.
	// Empty disables the webhook.
	RevalidateSecretHash string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if a value is
// malformed, or if production-only requirements are not met.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		ContentAPIURL:      strings.TrimRight(envOrDefault("CONTENT_API_URL", "https://cms.example.com/wp-json/wp/v2"), "/"),
		ContentAPIUsername: os.Getenv("CONTENT_API_USERNAME"),
		ContentAPIPassword: os.Getenv("CONTENT_API_PASSWORD"),

		VideoAPIKey:    os.Getenv("VIDEO_API_KEY"),
		VideoChannelID: envOrDefault("VIDEO_CHANNEL_ID", DefaultVideoChannelID),

		CacheBackend:   envOrDefault("CACHE_BACKEND", CacheMemory),
		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		SiteName:        envOrDefault("SITE_NAME", "Newsfront"),
		SiteURL:         strings.TrimRight(envOrDefault("SITE_URL", "http://localhost:8080"), "/"),
		SiteDescription: os.Getenv("SITE_DESCRIPTION"),
		SiteImage:       os.Getenv("SITE_IMAGE"),

		HomeFeaturedCategory: os.Getenv("HOME_FEATURED_CATEGORY"),
		HomeSections:         splitList(os.Getenv("HOME_SECTIONS")),

		RevalidateSecretHash: os.Getenv("REVALIDATE_SECRET_HASH"),
	}

	var err error
	if cfg.ContentRevalidate, err = envSeconds("CONTENT_REVALIDATE_SECONDS", 60); err != nil {
		return nil, err
	}
	if cfg.VideoRevalidate, err = envSeconds("VIDEO_REVALIDATE_SECONDS", 3600); err != nil {
		return nil, err
	}
	if cfg.HideFeaturedImageCategories, err = envIDs("HIDE_FEATURED_IMAGE_CATEGORIES"); err != nil {
		return nil, err
	}

	if cfg.CacheBackend != CacheMemory && cfg.CacheBackend != CacheValkey {
		return nil, fmt.Errorf("CACHE_BACKEND must be %q or %q, got %q", CacheMemory, CacheValkey, cfg.CacheBackend)
	}
	if cfg.RevalidateSecretHash != "" {
		if _, err := bcrypt.Cost([]byte(cfg.RevalidateSecretHash)); err != nil {
			return nil, fmt.Errorf("REVALIDATE_SECRET_HASH is not a bcrypt hash: %w", err)
		}
	}

	if cfg.Env == "production" {
		if !strings.HasPrefix(cfg.SiteURL, "https://") {
			return nil, fmt.Errorf("SITE_URL must use https in production")
		}
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ValkeyAddr returns the Valkey address (host:port).
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// VideosEnabled reports whether a video channel is configured.
func (c *Config) VideosEnabled() bool {
	return c.VideoChannelID != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envSeconds reads a non-negative number of seconds.
func envSeconds(key string, fallback int) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(fallback) * time.Second, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
	}
	return time.Duration(n) * time.Second, nil
}

// envIDs reads a comma-separated list of positive integer ids.
func envIDs(key string) ([]int, error) {
	var ids []int
	for _, part := range splitList(os.Getenv(key)) {
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%s: invalid id %q", key, part)
		}
		ids = append(ids, n)
	}
	return ids, nil
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
