package feed

import (
	"strings"

	"portfolio-feeds-api/core/domain"
	timeutil "portfolio-feeds-api/pkg/utils/time"
)

// normalize truncates raw items to count, maps them onto the common item shape
// and drops items whose title could not be determined
func normalize(raw []rawItem, count int) []domain.FeedItem {
	if count > 0 && len(raw) > count {
		raw = raw[:count]
	}

	items := make([]domain.FeedItem, 0, len(raw))
	for _, r := range raw {
		item := domain.FeedItem{
			Title:       strings.TrimSpace(r.Title),
			Link:        strings.TrimSpace(r.Link),
			Description: strings.TrimSpace(r.Description),
			PublishedAt: r.Published,
			Categories:  normalizeCategories(r.Categories),
		}

		if item.Title == "" {
			item.Title = domain.UntitledPost
		}
		if item.Description == "" {
			item.Description = strings.TrimSpace(r.Content)
		}
		if item.PublishedAt == nil {
			item.PublishedAt = timeutil.ParseOptional(r.PubDate, r.IsoDate)
		}

		if !item.IsValid() {
			continue
		}
		items = append(items, item)
	}

	return items
}

func normalizeCategories(categories []string) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
