// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package video

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"newsfront/internal/models"
	"newsfront/internal/sanitize"
)

// searchLatest queries the structured search endpoint ordered by date.
func (f *Feed) searchLatest(ctx context.Context, n int) ([]models.Video, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("channelId", f.config.ChannelID)
	q.Set("maxResults", strconv.Itoa(n))
	q.Set("order", "date")
	q.Set("type", "video")
	q.Set("key", f.config.APIKey)

	endpoint := strings.TrimRight(f.config.APIBaseURL, "/") + "/search?" + q.Encode()
	body, err := f.get(ctx, endpoint, searchKey(f.config.ChannelID, n))
	if err != nil {
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("video search unmarshal: %w", err)
	}

	videos := make([]models.Video, 0, len(result.Items))
	for _, item := range result.Items {
		if item.ID.VideoID == "" {
			continue
		}
		v := models.Video{
			ID:           item.ID.VideoID,
			Title:        sanitize.DecodeEntities(strings.TrimSpace(item.Snippet.Title)),
			Description:  sanitize.DecodeEntities(strings.TrimSpace(item.Snippet.Description)),
			ThumbnailURL: item.Snippet.Thumbnails.best(),
			URL:          WatchURL(item.ID.VideoID),
		}
		if v.ThumbnailURL == "" {
			v.ThumbnailURL = DefaultThumbnailURL(v.ID)
		}
		if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			v.PublishedAt = t
		}
		videos = append(videos, v)
		if len(videos) == n {
			break
		}
	}
	return videos, nil
}

// --- Search API types ---

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		PublishedAt string           `json:"publishedAt"`
		Title       string           `json:"title"`
		Description string           `json:"description"`
		Thumbnails  searchThumbnails `json:"thumbnails"`
	} `json:"snippet"`
}

type searchThumbnail struct {
	URL string `json:"url"`
}

type searchThumbnails struct {
	High    *searchThumbnail `json:"high"`
	Medium  *searchThumbnail `json:"medium"`
	Default *searchThumbnail `json:"default"`
}

// best returns the highest-resolution thumbnail available.
func (t searchThumbnails) best() string {
	for _, th := range []*searchThumbnail{t.High, t.Medium, t.Default} {
		if th != nil && th.URL != "" {
			return th.URL
		}
	}
	return ""
}
