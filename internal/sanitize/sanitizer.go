// Package sanitize turns raw fetched article bodies into clean text.
// Boilerplate removal is best-effort: known promotional phrases are
// dropped, everything else is left intact.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Ellipsis is appended to excerpts that were actually truncated.
const Ellipsis = "..."

var (
	tagPattern   = regexp.MustCompile(`<[^>]+>`)
	spacePattern = regexp.MustCompile(`\s+`)

	// Common official-account promotional phrases.
	boilerplatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)点击.*?关注`),
		regexp.MustCompile(`(?i)长按.*?识别`),
		regexp.MustCompile(`(?i)扫码.*?关注`),
		regexp.MustCompile(`(?i)更多.*?请关注`),
		regexp.MustCompile(`(?i)欢迎.*?分享`),
		regexp.MustCompile(`(?i)转发.*?朋友圈`),
	}
)

// Clean strips markup, collapses whitespace runs to single spaces and
// removes known promotional boilerplate.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}

	text := stripMarkup(raw)
	text = spacePattern.ReplaceAllString(strings.TrimSpace(text), " ")

	for _, pattern := range boilerplatePatterns {
		text = pattern.ReplaceAllString(text, "")
	}

	return strings.TrimSpace(text)
}

// Excerpt truncates clean text to maxLen characters, appending the
// ellipsis marker only when truncation actually occurred.
func Excerpt(clean string, maxLen int) string {
	if clean == "" || maxLen <= 0 {
		return ""
	}

	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	return string(runes[:maxLen]) + Ellipsis
}

func stripMarkup(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return tagPattern.ReplaceAllString(raw, "")
	}

	doc.Find("script, style").Remove()
	return doc.Text()
}
