// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package video lists the latest channel videos. With an API key it uses
// the structured search endpoint; without one it reads the channel's public
// XML feed. Both paths produce the same models.Video shape, and neither
// returns an error: zero videos is a normal state for callers.
package video

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"newsfront/internal/cache"
	"newsfront/internal/models"
)

const (
	// DefaultAPIBaseURL is the structured search API root.
	DefaultAPIBaseURL = "https://www.googleapis.com/youtube/v3"
	// DefaultFeedURL is the per-channel XML feed endpoint.
	DefaultFeedURL = "https://www.youtube.com/feeds/videos.xml"
	// DefaultTag labels cached video responses.
	DefaultTag = "videos"
	// DefaultTTL is how long a video listing is served before revalidation.
	DefaultTTL = time.Hour
)

// Config holds the video source settings.
type Config struct {
	APIKey     string // optional; selects the structured path when set
	ChannelID  string
	APIBaseURL string
	FeedURL    string
	TTL        time.Duration
	Tag        string
}

// Feed is the secondary media feed adapter.
type Feed struct {
	config Config
	store  cache.Store // may be nil
	client *http.Client
}

// New creates a Feed. store may be nil to disable caching.
func New(cfg Config, store cache.Store) *Feed {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.FeedURL == "" {
		cfg.FeedURL = DefaultFeedURL
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Tag == "" {
		cfg.Tag = DefaultTag
	}
	return &Feed{
		config: cfg,
		store:  store,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Tag returns the revalidation tag for video responses.
func (f *Feed) Tag() string {
	return f.config.Tag
}

// LatestVideos returns up to n of the channel's newest videos, or an empty
// slice if the source fails.
func (f *Feed) LatestVideos(ctx context.Context, n int) []models.Video {
	if n <= 0 {
		return []models.Video{}
	}

	var (
		videos []models.Video
		err    error
	)
	if f.config.APIKey != "" {
		videos, err = f.searchLatest(ctx, n)
	} else {
		videos, err = f.feedLatest(ctx, n)
	}
	if err != nil {
		slog.Warn("video listing failed", "channel", f.config.ChannelID, "structured", f.config.APIKey != "", "error", err)
		return []models.Video{}
	}
	return videos
}

// get fetches rawURL through the revalidation store. cacheKey must not
// contain credentials.
func (f *Feed) get(ctx context.Context, rawURL, cacheKey string) ([]byte, error) {
	if f.store != nil {
		if e, ok := f.store.Get(ctx, f.config.Tag, cacheKey); ok {
			return e.Body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("video request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("video http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("video read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("video source error (status %d): %s", resp.StatusCode, truncateBody(body))
	}

	if f.store != nil {
		f.store.Set(ctx, f.config.Tag, cacheKey, cache.Entry{Body: body}, f.config.TTL)
	}
	return body, nil
}

// WatchURL is the canonical watch page for a video id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(id)
}

// DefaultThumbnailURL is the thumbnail served for every video id.
func DefaultThumbnailURL(id string) string {
	return "https://i.ytimg.com/vi/" + url.PathEscape(id) + "/hqdefault.jpg"
}

func searchKey(channelID string, n int) string {
	return "search:" + channelID + ":" + strconv.Itoa(n)
}

func feedKey(channelID string) string {
	return "feed:" + channelID
}

func truncateBody(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
