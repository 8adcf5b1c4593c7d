package domain

import (
	"time"
	"unicode/utf8"
)

// RawListingItem is the upstream's page-level representation of one
// article. It only lives for the duration of a listing page.
type RawListingItem struct {
	Title         string
	URL           string
	CoverURL      string
	PostTimeStr   string
	SendToFansNum int
	AppMsgID      int64 // upstream identifier, 0 for some items
}

// Article is the enriched durable record. Content fields are filled in
// during backfill; records are never deleted, only updated.
type Article struct {
	ID            string     `json:"wechat_article_id"`
	Title         string     `json:"title"`
	URL           string     `json:"original_url"`
	CoverURL      string     `json:"cover_image_url"`
	PostTimeStr   string     `json:"post_time_str"`
	PublishedAt   string     `json:"published_at"`
	SendToFansNum int        `json:"send_to_fans_num"`
	CategoryID    string     `json:"category_id"`
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt"`
	FetchSuccess  bool       `json:"fetch_success"`
	FetchError    string     `json:"fetch_error,omitempty"`
	FetchCost     float64    `json:"fetch_cost"`
	FetchedAt     *time.Time `json:"fetch_time,omitempty"`
}

// HasContent reports whether the article already carries non-trivial
// content, i.e. backfill for it is complete. The threshold counts
// characters, not bytes.
func (a *Article) HasContent(minLen int) bool {
	return utf8.RuneCountInString(a.Content) > minLen
}
