// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package video

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"newsfront/internal/cache"
)

const channelFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015" xmlns:media="http://search.yahoo.com/mrss/" xmlns="http://www.w3.org/2005/Atom">
 <title>Newsroom</title>
 <entry>
  <id>yt:video:abc123</id>
  <yt:videoId>abc123</yt:videoId>
  <title><![CDATA[Breaking &amp; Live]]></title>
  <published>2026-03-01T10:00:00+00:00</published>
  <media:group>
   <media:title>Breaking</media:title>
   <media:thumbnail url="https://i1.ytimg.com/vi/abc123/maxres.jpg" width="480" height="360"/>
   <media:description>A short description</media:description>
  </media:group>
 </entry>
 <entry>
  <id>yt:video:def456</id>
  <yt:videoId>def456</yt:videoId>
  <title>   Plain title   </title>
  <published>2026-02-01T10:00:00+00:00</published>
 </entry>
 <entry>
  <id>yt:video:ghi789</id>
  <title>Id from entry</title>
  <published>2026-01-01T10:00:00+00:00</published>
 </entry>
</feed>`

func TestParseFeed(t *testing.T) {
	videos, err := ParseFeed(channelFeed, 10)
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	if len(videos) != 3 {
		t.Fatalf("ParseFeed: got %d videos, want 3", len(videos))
	}

	first := videos[0]
	if first.ID != "abc123" {
		t.Errorf("ID: got %q", first.ID)
	}
	if first.Title != "Breaking & Live" {
		t.Errorf("CDATA title: got %q, want %q", first.Title, "Breaking & Live")
	}
	if first.Description != "A short description" {
		t.Errorf("Description: got %q", first.Description)
	}
	if first.ThumbnailURL != "https://i1.ytimg.com/vi/abc123/maxres.jpg" {
		t.Errorf("ThumbnailURL: got %q", first.ThumbnailURL)
	}
	if first.URL != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("URL: got %q", first.URL)
	}
	if !first.PublishedAt.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("PublishedAt: got %v", first.PublishedAt)
	}

	second := videos[1]
	if second.Title != "Plain title" {
		t.Errorf("plain title: got %q, want %q", second.Title, "Plain title")
	}
	if second.ThumbnailURL != DefaultThumbnailURL("def456") {
		t.Errorf("default thumbnail: got %q", second.ThumbnailURL)
	}

	if videos[2].ID != "ghi789" {
		t.Errorf("id from entry id: got %q", videos[2].ID)
	}
}

// TestParseFeed_EntitiesDecodedOnce verifies that escaped text is decoded a
// single time whether or not it sits in a CDATA section.
func TestParseFeed_EntitiesDecodedOnce(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "escaped text", title: `Writing &amp;lt;b&amp;gt; tags`, want: "Writing &lt;b&gt; tags"},
		{name: "plain entity", title: `Council &amp; budget`, want: "Council & budget"},
		{name: "cdata", title: `<![CDATA[Q&amp;A: &quot;live&quot;]]>`, want: `Q&A: "live"`},
		{name: "cdata with markup", title: `<![CDATA[Writing <b> tags]]>`, want: "Writing <b> tags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015" xmlns="http://www.w3.org/2005/Atom">
 <entry>
  <id>yt:video:abc123</id>
  <yt:videoId>abc123</yt:videoId>
  <title>` + tt.title + `</title>
 </entry>
</feed>`
			videos, err := ParseFeed(feed, 1)
			if err != nil {
				t.Fatalf("ParseFeed: %v", err)
			}
			if len(videos) != 1 {
				t.Fatalf("ParseFeed: got %d videos, want 1", len(videos))
			}
			if videos[0].Title != tt.want {
				t.Errorf("Title: got %q, want %q", videos[0].Title, tt.want)
			}
		})
	}
}

func TestParseFeed_Limit(t *testing.T) {
	videos, err := ParseFeed(channelFeed, 2)
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	if len(videos) != 2 || videos[1].ID != "def456" {
		t.Errorf("limit: got %+v", videos)
	}
}

func TestLatestVideos_FeedPath(t *testing.T) {
	var gotChannel string
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		gotChannel = r.URL.Query().Get("channel_id")
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(channelFeed))
	}))
	defer srv.Close()

	f := New(Config{ChannelID: "UC123", FeedURL: srv.URL + "/feeds/videos.xml"}, cache.NewMemoryStore())
	videos := f.LatestVideos(context.Background(), 1)
	if len(videos) != 1 || videos[0].ID != "abc123" {
		t.Fatalf("LatestVideos: got %+v", videos)
	}
	if gotChannel != "UC123" {
		t.Errorf("channel_id: got %q", gotChannel)
	}

	f.LatestVideos(context.Background(), 3)
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("feed should be served from cache on the second call, hits = %d", got)
	}
}

const searchBody = `{
	"items": [
		{
			"id": {"kind": "youtube#video", "videoId": "v1"},
			"snippet": {
				"publishedAt": "2026-04-01T08:00:00Z",
				"title": "Mayor&#39;s &quot;plan&quot;",
				"description": "Council &amp; budget",
				"thumbnails": {
					"default": {"url": "https://i.ytimg.com/vi/v1/default.jpg"},
					"medium": {"url": "https://i.ytimg.com/vi/v1/mqdefault.jpg"},
					"high": {"url": "https://i.ytimg.com/vi/v1/hqdefault.jpg"}
				}
			}
		},
		{
			"id": {"kind": "youtube#video", "videoId": "v2"},
			"snippet": {
				"publishedAt": "2026-03-31T08:00:00Z",
				"title": "Second",
				"thumbnails": {
					"default": {"url": "https://i.ytimg.com/vi/v2/default.jpg"},
					"medium": {"url": "https://i.ytimg.com/vi/v2/mqdefault.jpg"}
				}
			}
		},
		{
			"id": {"kind": "youtube#channel", "channelId": "UC123"},
			"snippet": {"title": "Channel result"}
		},
		{
			"id": {"kind": "youtube#video", "videoId": "v3"},
			"snippet": {"title": "Third", "thumbnails": {"default": {"url": "https://i.ytimg.com/vi/v3/default.jpg"}}}
		}
	]
}`

func TestLatestVideos_SearchPath(t *testing.T) {
	var query map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		q := r.URL.Query()
		query = map[string]string{
			"key": q.Get("key"), "channelId": q.Get("channelId"), "order": q.Get("order"),
			"maxResults": q.Get("maxResults"), "type": q.Get("type"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	f := New(Config{APIKey: "k-123", ChannelID: "UC123", APIBaseURL: srv.URL}, nil)
	videos := f.LatestVideos(context.Background(), 3)

	want := map[string]string{"key": "k-123", "channelId": "UC123", "order": "date", "maxResults": "3", "type": "video"}
	for k, v := range want {
		if query[k] != v {
			t.Errorf("query %s: got %q, want %q", k, query[k], v)
		}
	}

	if len(videos) != 3 {
		t.Fatalf("got %d videos, want 3: %+v", len(videos), videos)
	}
	if videos[0].Title != `Mayor's "plan"` {
		t.Errorf("decoded title: got %q", videos[0].Title)
	}
	if videos[0].Description != "Council & budget" {
		t.Errorf("decoded description: got %q", videos[0].Description)
	}
	if videos[0].ThumbnailURL != "https://i.ytimg.com/vi/v1/hqdefault.jpg" {
		t.Errorf("high thumbnail: got %q", videos[0].ThumbnailURL)
	}
	if videos[1].ThumbnailURL != "https://i.ytimg.com/vi/v2/mqdefault.jpg" {
		t.Errorf("medium fallback: got %q", videos[1].ThumbnailURL)
	}
	if videos[2].ThumbnailURL != "https://i.ytimg.com/vi/v3/default.jpg" {
		t.Errorf("default fallback: got %q", videos[2].ThumbnailURL)
	}
	if !videos[0].PublishedAt.Equal(time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("PublishedAt: got %v", videos[0].PublishedAt)
	}
	if videos[1].URL != WatchURL("v2") {
		t.Errorf("URL: got %q", videos[1].URL)
	}
}

func TestLatestVideos_FailuresYieldEmpty(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		status int
		body   string
	}{
		{name: "search 403", apiKey: "k", status: http.StatusForbidden, body: `{"error": {"code": 403}}`},
		{name: "search malformed", apiKey: "k", status: http.StatusOK, body: `{"items": [`},
		{name: "feed 500", status: http.StatusInternalServerError, body: "oops"},
		{name: "feed not xml", status: http.StatusOK, body: "definitely not a feed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			f := New(Config{APIKey: tt.apiKey, ChannelID: "UC1", APIBaseURL: srv.URL, FeedURL: srv.URL}, nil)
			videos := f.LatestVideos(context.Background(), 5)
			if videos == nil || len(videos) != 0 {
				t.Errorf("expected empty non-nil slice, got %#v", videos)
			}
		})
	}
}

func TestLatestVideos_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	f := New(Config{ChannelID: "UC1", FeedURL: srv.URL}, nil)
	if videos := f.LatestVideos(context.Background(), 5); len(videos) != 0 {
		t.Errorf("expected no videos, got %+v", videos)
	}
}

func TestLatestVideos_NonPositiveLimit(t *testing.T) {
	f := New(Config{ChannelID: "UC1", FeedURL: "http://127.0.0.1:0"}, nil)
	if videos := f.LatestVideos(context.Background(), 0); videos == nil || len(videos) != 0 {
		t.Errorf("expected empty slice, got %#v", videos)
	}
}
