// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"

	"newsfront/internal/models"
	"newsfront/internal/sanitize"
)

// HomeLayout describes the sections of the homepage.
type HomeLayout struct {
	FeaturedCategory string   // slug; empty means the newest post is featured
	Sections         []string // category slugs, in display order
	LatestCount      int
	SectionCount     int
	VideoCount       int
}

func (l HomeLayout) withDefaults() HomeLayout {
	if l.LatestCount <= 0 {
		l.LatestCount = 10
	}
	if l.SectionCount <= 0 {
		l.SectionCount = 4
	}
	if l.VideoCount <= 0 {
		l.VideoCount = 6
	}
	return l
}

// Section is one category slice on the homepage.
type Section struct {
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	Articles []Article `json:"articles"`
}

// Homepage is the assembled homepage data.
type Homepage struct {
	Featured *Article       `json:"featured,omitempty"`
	Latest   []Article      `json:"latest"`
	Sections []Section      `json:"sections"`
	Videos   []models.Video `json:"videos"`
	Degraded []string       `json:"degraded,omitempty"`
}

type sectionResult struct {
	cat   *models.Category
	posts []models.Post
}

// Homepage fetches every homepage section concurrently. A failing section is
// rendered empty and named in Degraded; the call itself never fails.
func (s *Service) Homepage(ctx context.Context) *Homepage {
	var (
		featured []models.Post
		latest   []models.Post
		videos   []models.Video
		sections = make([]sectionResult, len(s.home.Sections))
	)

	b := NewBatch(ctx)
	if s.home.FeaturedCategory != "" {
		Go(b, "featured", &featured, nil, func(ctx context.Context) ([]models.Post, error) {
			return s.categorySlice(ctx, s.home.FeaturedCategory, 1)
		})
	}
	Go(b, "latest", &latest, nil, func(ctx context.Context) ([]models.Post, error) {
		res, err := s.LatestPosts(ctx, 1, s.home.LatestCount+1)
		if err != nil {
			return nil, err
		}
		return res.Items, nil
	})
	for i, slug := range s.home.Sections {
		slug := slug
		Go(b, "section:"+slug, &sections[i], sectionResult{}, func(ctx context.Context) (sectionResult, error) {
			cat, res, err := s.PostsByCategorySlug(ctx, slug, 1, s.home.SectionCount)
			if err != nil || cat == nil {
				return sectionResult{}, err
			}
			return sectionResult{cat: cat, posts: res.Items}, nil
		})
	}
	Go(b, "videos", &videos, nil, func(ctx context.Context) ([]models.Video, error) {
		return s.Videos(ctx, s.home.VideoCount), nil
	})
	degraded := b.Wait()

	home := &Homepage{
		Latest:   []Article{},
		Sections: []Section{},
		Videos:   videos,
		Degraded: degraded,
	}
	if home.Videos == nil {
		home.Videos = []models.Video{}
	}

	if len(featured) == 0 && len(latest) > 0 {
		featured, latest = latest[:1], latest[1:]
	}
	if len(featured) > 0 {
		a := Summarize(&featured[0], s.policies)
		home.Featured = &a
		latest = withoutPost(latest, featured[0].ID)
	}
	if len(latest) > s.home.LatestCount {
		latest = latest[:s.home.LatestCount]
	}
	home.Latest = SummarizeAll(latest, s.policies)

	for i, slug := range s.home.Sections {
		r := sections[i]
		sec := Section{Slug: slug, Articles: SummarizeAll(r.posts, s.policies)}
		if r.cat != nil {
			sec.Name = sanitize.DecodeEntities(r.cat.Name)
		}
		home.Sections = append(home.Sections, sec)
	}
	return home
}

func (s *Service) categorySlice(ctx context.Context, slug string, n int) ([]models.Post, error) {
	_, res, err := s.PostsByCategorySlug(ctx, slug, 1, n)
	if err != nil || res == nil {
		return nil, err
	}
	return res.Items, nil
}

func withoutPost(posts []models.Post, id int) []models.Post {
	out := posts[:0:0]
	for _, p := range posts {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
