// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package video

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"newsfront/internal/models"
	"newsfront/internal/sanitize"
)

// cdataSection matches a CDATA section. The parser passes its content through
// untouched, so entities inside it are still encoded.
var cdataSection = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)

// feedLatest reads the channel's XML feed.
func (f *Feed) feedLatest(ctx context.Context, n int) ([]models.Video, error) {
	endpoint := f.config.FeedURL + "?channel_id=" + url.QueryEscape(f.config.ChannelID)
	body, err := f.get(ctx, endpoint, feedKey(f.config.ChannelID))
	if err != nil {
		return nil, err
	}
	return ParseFeed(string(body), n)
}

// ParseFeed extracts up to n videos from a channel XML feed, in feed order.
// Entries without a resolvable video id are skipped.
func ParseFeed(body string, n int) ([]models.Video, error) {
	parsed, err := gofeed.NewParser().ParseString(decodeCDATA(body))
	if err != nil {
		return nil, fmt.Errorf("video feed parse: %w", err)
	}

	videos := make([]models.Video, 0, n)
	for _, item := range parsed.Items {
		if len(videos) == n {
			break
		}
		id := entryVideoID(item)
		if id == "" {
			continue
		}

		v := models.Video{
			ID:           id,
			Title:        strings.TrimSpace(item.Title),
			Description:  strings.TrimSpace(entryDescription(item)),
			ThumbnailURL: entryThumbnail(item),
			URL:          WatchURL(id),
		}
		if v.ThumbnailURL == "" {
			v.ThumbnailURL = DefaultThumbnailURL(id)
		}
		if item.PublishedParsed != nil {
			v.PublishedAt = *item.PublishedParsed
		}
		videos = append(videos, v)
	}
	return videos, nil
}

// decodeCDATA decodes entities inside CDATA sections so every text value
// reaches the parser encoded exactly once.
func decodeCDATA(body string) string {
	return cdataSection.ReplaceAllStringFunc(body, func(m string) string {
		inner := sanitize.DecodeEntities(m[len("<![CDATA[") : len(m)-len("]]>")])
		return "<![CDATA[" + strings.ReplaceAll(inner, "]]>", "]]]]><![CDATA[>") + "]]>"
	})
}

// entryVideoID reads <yt:videoId>, falling back to the "yt:video:<id>" entry id.
func entryVideoID(item *gofeed.Item) string {
	if id := extValue(item.Extensions, "yt", "videoId"); id != "" {
		return id
	}
	if rest, ok := strings.CutPrefix(item.GUID, "yt:video:"); ok {
		return strings.TrimSpace(rest)
	}
	return ""
}

// entryDescription reads <media:group><media:description>, then the entry summary.
func entryDescription(item *gofeed.Item) string {
	if group := mediaGroup(item); group != nil {
		for _, d := range group.Children["description"] {
			if d.Value != "" {
				return d.Value
			}
		}
	}
	return item.Description
}

// entryThumbnail reads <media:group><media:thumbnail url="...">.
func entryThumbnail(item *gofeed.Item) string {
	if group := mediaGroup(item); group != nil {
		for _, th := range group.Children["thumbnail"] {
			if u := strings.TrimSpace(th.Attrs["url"]); u != "" {
				return u
			}
		}
	}
	if item.Image != nil {
		return strings.TrimSpace(item.Image.URL)
	}
	return ""
}

func mediaGroup(item *gofeed.Item) *ext.Extension {
	groups := item.Extensions["media"]["group"]
	if len(groups) == 0 {
		return nil
	}
	return &groups[0]
}

func extValue(exts ext.Extensions, prefix, name string) string {
	for _, e := range exts[prefix][name] {
		if v := strings.TrimSpace(e.Value); v != "" {
			return v
		}
	}
	return ""
}
