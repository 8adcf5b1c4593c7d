// Package repository holds the per-account working set of discovered
// articles for one run, merged with the previous run's snapshot so
// backfill never re-pays for content it already has.
package repository

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"wechat_fetcher/internal/classify"
	"wechat_fetcher/internal/domain"
	"wechat_fetcher/internal/sanitize"
	"wechat_fetcher/internal/source/dajiala"
)

const (
	// MinContentLen is the character threshold above which an article
	// counts as already backfilled.
	MinContentLen = 100

	excerptLen     = 200
	postTimeLayout = "2006-01-02 15:04:05"
)

// ArticleID derives the stable article identifier: md5 of the trimmed
// canonical URL, first 16 hex chars. Items without a URL fall back to
// the upstream identifier, and to a random id as a last resort, so the
// same upstream item always maps to the same record across runs.
func ArticleID(rawURL string, appMsgID int64) string {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed != "" {
		sum := md5.Sum([]byte(trimmed))
		return hex.EncodeToString(sum[:])[:16]
	}
	if appMsgID != 0 {
		return strconv.FormatInt(appMsgID, 10)
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// Repository is the in-memory article store. All methods are safe for
// concurrent use, though the reference pipeline drives it sequentially.
type Repository struct {
	mu         sync.Mutex
	classifier *classify.Classifier
	order      []string
	results    map[string]*domain.AccountSyncResult
	index      map[string]map[string]*domain.Article
}

func New(classifier *classify.Classifier) *Repository {
	return &Repository{
		classifier: classifier,
		results:    make(map[string]*domain.AccountSyncResult),
		index:      make(map[string]map[string]*domain.Article),
	}
}

// Seed merges a previous run's snapshot into the working set, keeping
// already-fetched content visible to Upsert and NeedsContentFetch.
func (r *Repository) Seed(snap *domain.RunSnapshot) {
	if snap == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, result := range snap.AccountResults {
		existing, ok := r.results[result.AccountName]
		if !ok {
			existing = &domain.AccountSyncResult{AccountName: result.AccountName}
			r.results[result.AccountName] = existing
			r.index[result.AccountName] = make(map[string]*domain.Article)
			r.order = append(r.order, result.AccountName)
		}
		for _, article := range result.Articles {
			if _, dup := r.index[result.AccountName][article.ID]; dup {
				continue
			}
			existing.Articles = append(existing.Articles, article)
			r.index[result.AccountName][article.ID] = article
		}
	}
}

// StartAccount resets the account's per-run counters while keeping its
// previously materialized articles.
func (r *Repository) StartAccount(account domain.Account) *domain.AccountSyncResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := r.ensureAccount(account.Name)
	result.TotalArticles = 0
	result.NewArticles = 0
	result.Published = 0
	result.Errors = 0
	result.Restricted = 0
	result.EmptyContent = 0
	result.Cost = 0
	return result
}

// Upsert merges a raw listing item into the account's working set,
// keyed by the stable article id. Existing articles keep their content;
// listing metadata is refreshed. Returns the article and whether it was
// newly created.
func (r *Repository) Upsert(item domain.RawListingItem, account domain.Account) (*domain.Article, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := r.ensureAccount(account.Name)
	id := ArticleID(item.URL, item.AppMsgID)

	if existing, ok := r.index[account.Name][id]; ok {
		existing.Title = item.Title
		existing.CoverURL = item.CoverURL
		existing.PostTimeStr = item.PostTimeStr
		existing.SendToFansNum = item.SendToFansNum
		return existing, false
	}

	article := &domain.Article{
		ID:            id,
		Title:         item.Title,
		URL:           strings.TrimSpace(item.URL),
		CoverURL:      item.CoverURL,
		PostTimeStr:   item.PostTimeStr,
		PublishedAt:   normalizePostTime(item.PostTimeStr),
		SendToFansNum: item.SendToFansNum,
		CategoryID:    account.CategoryID,
	}

	result.Articles = append(result.Articles, article)
	r.index[account.Name][id] = article
	return article, true
}

// NeedsContentFetch reports whether backfill should attempt a content
// fetch for the article.
func (r *Repository) NeedsContentFetch(a *domain.Article) bool {
	return a.URL != "" && !a.HasContent(MinContentLen)
}

// ApplyContent records a backfill outcome atomically with the content
// write. On success the sanitized content, excerpt and refined category
// are stored; on failure the error code is stored with empty content,
// except that content from a prior success is never overwritten.
// Cost and fetch time are recorded either way. Returns the recorded
// error, which may differ from fetchErr when sanitizing yields nothing.
func (r *Repository) ApplyContent(a *domain.Article, raw string, cost float64, fetchErr error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	a.FetchCost = cost
	a.FetchedAt = &now

	if fetchErr == nil {
		clean := sanitize.Clean(raw)
		if clean == "" {
			fetchErr = dajiala.ErrEmptyContent
		} else {
			a.Content = clean
			a.Excerpt = sanitize.Excerpt(clean, excerptLen)
			a.FetchSuccess = true
			a.FetchError = ""
			a.CategoryID = r.classifier.Classify(a.Title, clean)
			return nil
		}
	}

	// A failed attempt must not regress an already-complete article.
	if !a.HasContent(MinContentLen) {
		a.Content = ""
		a.Excerpt = ""
		a.FetchSuccess = false
		a.FetchError = dajiala.FetchErrorCode(fetchErr)
	}
	return fetchErr
}

// Snapshot assembles the current state into a RunSnapshot, accounts in
// first-seen order.
func (r *Repository) Snapshot(stats domain.SyncStats, duration time.Duration) *domain.RunSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	results := make([]*domain.AccountSyncResult, 0, len(r.order))
	for _, name := range r.order {
		results = append(results, r.results[name])
	}

	return &domain.RunSnapshot{
		SyncStats:      stats,
		AccountResults: results,
		Duration:       int64(duration.Seconds()),
		CreatedAt:      time.Now().UTC(),
	}
}

func (r *Repository) ensureAccount(name string) *domain.AccountSyncResult {
	result, ok := r.results[name]
	if !ok {
		result = &domain.AccountSyncResult{AccountName: name}
		r.results[name] = result
		r.index[name] = make(map[string]*domain.Article)
		r.order = append(r.order, name)
	}
	return result
}

func normalizePostTime(postTimeStr string) string {
	t, err := time.ParseInLocation(postTimeLayout, postTimeStr, time.UTC)
	if err != nil {
		t = time.Now().UTC()
	}
	return t.Format("2006-01-02T15:04:05") + "+00:00"
}
