package domain

import "testing"

func TestFeedItem_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		item     FeedItem
		expected bool
	}{
		{
			name: "valid item with title and link",
			item: FeedItem{
				Title: "Test Article",
				Link:  "https://example.com/article",
			},
			expected: true,
		},
		{
			name: "valid item without link",
			item: FeedItem{
				Title: "Test Article",
			},
			expected: true,
		},
		{
			name: "invalid item with empty title",
			item: FeedItem{
				Title: "",
				Link:  "https://example.com/article",
			},
			expected: false,
		},
		{
			name: "invalid item with default title",
			item: FeedItem{
				Title: UntitledPost,
				Link:  "https://example.com/article",
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.item.IsValid()
			if result != tt.expected {
				t.Errorf("IsValid() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestFeedDescriptor_Validate(t *testing.T) {
	tests := []struct {
		name    string
		desc    FeedDescriptor
		wantErr bool
	}{
		{
			name:    "valid descriptor",
			desc:    FeedDescriptor{Title: "Blog", RSSURL: "https://blog.example.com/rss"},
			wantErr: false,
		},
		{
			name:    "missing title",
			desc:    FeedDescriptor{RSSURL: "https://blog.example.com/rss"},
			wantErr: true,
		},
		{
			name:    "missing rss url",
			desc:    FeedDescriptor{Title: "Blog"},
			wantErr: true,
		},
		{
			name:    "relative rss url",
			desc:    FeedDescriptor{Title: "Blog", RSSURL: "/rss.xml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.desc.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
