package feed

import (
	"testing"
	"time"

	"portfolio-feeds-api/core/domain"
)

func TestNormalize(t *testing.T) {
	published := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	raw := []rawItem{
		{Title: "  Spaced title  ", Link: " https://a.test/1 ", Description: "  desc  ", Content: "content"},
		{Title: "No description", Content: "  from content  "},
		{Title: "ISO date", IsoDate: "2024-01-02T03:04:05Z"},
		{Title: "Parsed upstream", Published: &published, PubDate: "garbage"},
		{Title: "Bad date", PubDate: "a while ago", Categories: []string{" go ", "", "web"}},
		{Title: domain.UntitledPost},
	}

	items := normalize(raw, 10)
	if len(items) != 5 {
		t.Fatalf("items = %d, want 5", len(items))
	}

	if items[0].Title != "Spaced title" || items[0].Link != "https://a.test/1" || items[0].Description != "desc" {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].Description != "from content" {
		t.Errorf("items[1].Description = %q", items[1].Description)
	}
	if items[2].PublishedAt == nil || !items[2].PublishedAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("items[2].PublishedAt = %v", items[2].PublishedAt)
	}
	if items[3].PublishedAt == nil || !items[3].PublishedAt.Equal(published) {
		t.Errorf("items[3].PublishedAt = %v", items[3].PublishedAt)
	}
	if items[4].PublishedAt != nil {
		t.Errorf("items[4].PublishedAt = %v, want nil", items[4].PublishedAt)
	}
	if len(items[4].Categories) != 2 || items[4].Categories[0] != "go" || items[4].Categories[1] != "web" {
		t.Errorf("items[4].Categories = %v", items[4].Categories)
	}

	for i, item := range items {
		if item.Categories == nil {
			t.Errorf("items[%d].Categories is nil", i)
		}
	}
}

func TestNormalize_TruncatesBeforeDropping(t *testing.T) {
	raw := []rawItem{{Title: ""}, {Title: "B"}, {Title: "C"}}

	items := normalize(raw, 2)
	if len(items) != 1 || items[0].Title != "B" {
		t.Errorf("items = %+v, want only B", items)
	}
}

func TestNormalize_Empty(t *testing.T) {
	items := normalize(nil, 5)
	if items == nil || len(items) != 0 {
		t.Errorf("normalize(nil) = %#v, want empty slice", items)
	}
}
