package repository

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wechat_fetcher/internal/classify"
	"wechat_fetcher/internal/domain"
	"wechat_fetcher/internal/source/dajiala"
)

var testAccount = domain.Account{
	ID:         "1",
	Name:       "高瞻的智慧人生",
	Biz:        "BIZ123",
	CategoryID: "wisdom",
	IsActive:   true,
}

func newTestRepo() *Repository {
	return New(classify.New(nil, ""))
}

func rawItem(url string) domain.RawListingItem {
	return domain.RawListingItem{
		Title:       "测试文章",
		URL:         url,
		CoverURL:    "https://example.com/cover.jpg",
		PostTimeStr: "2024-03-01 12:30:00",
	}
}

func TestArticleID(t *testing.T) {
	t.Run("deterministic for same url", func(t *testing.T) {
		a := ArticleID("https://mp.weixin.qq.com/s/abc", 0)
		b := ArticleID("https://mp.weixin.qq.com/s/abc", 42)
		assert.Equal(t, a, b)
		assert.Len(t, a, 16)
	})

	t.Run("surrounding whitespace ignored", func(t *testing.T) {
		assert.Equal(t,
			ArticleID("https://mp.weixin.qq.com/s/abc", 0),
			ArticleID(" https://mp.weixin.qq.com/s/abc ", 0),
		)
	})

	t.Run("upstream id fallback", func(t *testing.T) {
		assert.Equal(t, "42", ArticleID("", 42))
	})

	t.Run("random fallback when both absent", func(t *testing.T) {
		a := ArticleID("", 0)
		b := ArticleID("", 0)
		assert.Len(t, a, 16)
		assert.NotEqual(t, a, b)
	})
}

func TestUpsertIdempotent(t *testing.T) {
	repo := newTestRepo()

	first, isNew := repo.Upsert(rawItem("https://mp.weixin.qq.com/s/a"), testAccount)
	require.True(t, isNew)

	second, isNew := repo.Upsert(rawItem("https://mp.weixin.qq.com/s/a"), testAccount)
	assert.False(t, isNew)
	assert.Same(t, first, second)

	result := repo.StartAccount(testAccount)
	assert.Len(t, result.Articles, 1)
}

func TestUpsertPreservesExistingContent(t *testing.T) {
	repo := newTestRepo()

	article, _ := repo.Upsert(rawItem("https://mp.weixin.qq.com/s/a"), testAccount)
	content := strings.Repeat("智慧与人生的思考。", 30)
	require.NoError(t, repo.ApplyContent(article, content, 0.04, nil))
	require.True(t, article.FetchSuccess)

	item := rawItem("https://mp.weixin.qq.com/s/a")
	item.Title = "更新的标题"
	merged, isNew := repo.Upsert(item, testAccount)

	assert.False(t, isNew)
	assert.Equal(t, "更新的标题", merged.Title)
	assert.NotEmpty(t, merged.Content)
	assert.False(t, repo.NeedsContentFetch(merged))
}

func TestNeedsContentFetch(t *testing.T) {
	repo := newTestRepo()

	t.Run("no url", func(t *testing.T) {
		assert.False(t, repo.NeedsContentFetch(&domain.Article{}))
	})

	t.Run("short content still needs fetch", func(t *testing.T) {
		a := &domain.Article{URL: "https://x", Content: strings.Repeat("字", MinContentLen)}
		assert.True(t, repo.NeedsContentFetch(a))
	})

	t.Run("content above threshold", func(t *testing.T) {
		a := &domain.Article{URL: "https://x", Content: strings.Repeat("字", MinContentLen+1)}
		assert.False(t, repo.NeedsContentFetch(a))
	})
}

func TestApplyContentSuccess(t *testing.T) {
	repo := newTestRepo()
	article, _ := repo.Upsert(rawItem("https://mp.weixin.qq.com/s/a"), testAccount)

	raw := "<p>" + strings.Repeat("交易与投资的市场分析。", 25) + "</p>"
	err := repo.ApplyContent(article, raw, 0.04, nil)

	require.NoError(t, err)
	assert.True(t, article.FetchSuccess)
	assert.Empty(t, article.FetchError)
	assert.Equal(t, 0.04, article.FetchCost)
	require.NotNil(t, article.FetchedAt)
	assert.NotContains(t, article.Content, "<p>")
	assert.True(t, strings.HasPrefix(article.Content, article.Excerpt[:len(article.Excerpt)-len("...")]))
	// keyword classification refines the account default
	assert.Equal(t, "trading", article.CategoryID)
}

func TestApplyContentFailure(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		name     string
		fetchErr error
		wantCode string
	}{
		{"restricted", &dajiala.UpstreamError{Code: 1, Message: "内容限制访问"}, "restricted"},
		{"upstream message", &dajiala.UpstreamError{Code: 2, Message: "参数错误"}, "参数错误"},
		{"empty content", dajiala.ErrEmptyContent, "empty_content"},
		{"transport", &dajiala.TransportError{Err: errors.New("timeout")}, "transport: timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			article, _ := repo.Upsert(rawItem("https://mp.weixin.qq.com/s/"+tt.name), testAccount)

			err := repo.ApplyContent(article, "", 0.04, tt.fetchErr)

			require.Error(t, err)
			assert.False(t, article.FetchSuccess)
			assert.Equal(t, tt.wantCode, article.FetchError)
			assert.Empty(t, article.Content)
			assert.Equal(t, 0.04, article.FetchCost)
			require.NotNil(t, article.FetchedAt)
		})
	}
}

func TestApplyContentSanitizedToNothingIsEmptyContent(t *testing.T) {
	repo := newTestRepo()
	article, _ := repo.Upsert(rawItem("https://mp.weixin.qq.com/s/a"), testAccount)

	err := repo.ApplyContent(article, "<div>   </div>", 0.04, nil)

	assert.True(t, errors.Is(err, dajiala.ErrEmptyContent))
	assert.False(t, article.FetchSuccess)
	assert.Equal(t, "empty_content", article.FetchError)
}

func TestApplyContentNeverRegresses(t *testing.T) {
	repo := newTestRepo()
	article, _ := repo.Upsert(rawItem("https://mp.weixin.qq.com/s/a"), testAccount)

	content := strings.Repeat("智慧与人生的思考。", 30)
	require.NoError(t, repo.ApplyContent(article, content, 0.04, nil))

	// a re-run would consult NeedsContentFetch before paying again
	assert.False(t, repo.NeedsContentFetch(article))
}

func TestApplyContentFailureKeepsPriorContent(t *testing.T) {
	repo := newTestRepo()
	article, _ := repo.Upsert(rawItem("https://mp.weixin.qq.com/s/a"), testAccount)

	content := strings.Repeat("智慧与人生的思考。", 30)
	require.NoError(t, repo.ApplyContent(article, content, 0.04, nil))
	want := article.Content

	err := repo.ApplyContent(article, "", 0.04, &dajiala.TransportError{Err: errors.New("timeout")})

	require.Error(t, err)
	assert.Equal(t, want, article.Content)
	assert.NotEmpty(t, article.Excerpt)
	assert.True(t, article.FetchSuccess)
	assert.Empty(t, article.FetchError)
}

func TestSeedMergesPreviousRun(t *testing.T) {
	repo := newTestRepo()

	fetched := time.Now().UTC()
	repo.Seed(&domain.RunSnapshot{
		AccountResults: []*domain.AccountSyncResult{
			{
				AccountName: testAccount.Name,
				Articles: []*domain.Article{
					{
						ID:           ArticleID("https://mp.weixin.qq.com/s/a", 0),
						Title:        "旧标题",
						URL:          "https://mp.weixin.qq.com/s/a",
						Content:      strings.Repeat("历史内容。", 40),
						FetchSuccess: true,
						FetchedAt:    &fetched,
					},
				},
			},
		},
	})

	article, isNew := repo.Upsert(rawItem("https://mp.weixin.qq.com/s/a"), testAccount)

	assert.False(t, isNew)
	assert.NotEmpty(t, article.Content)
	assert.False(t, repo.NeedsContentFetch(article))
}

func TestStartAccountResetsCountersKeepsArticles(t *testing.T) {
	repo := newTestRepo()

	_, _ = repo.Upsert(rawItem("https://mp.weixin.qq.com/s/a"), testAccount)
	result := repo.StartAccount(testAccount)
	result.NewArticles = 3
	result.Errors = 2
	result.Cost = 0.5

	result = repo.StartAccount(testAccount)

	assert.Zero(t, result.NewArticles)
	assert.Zero(t, result.Errors)
	assert.Zero(t, result.Cost)
	assert.Len(t, result.Articles, 1)
}

func TestSnapshotKeepsAccountOrder(t *testing.T) {
	repo := newTestRepo()

	second := domain.Account{ID: "2", Name: "高瞻的交易人生", Biz: "BIZ456", CategoryID: "trading"}
	repo.StartAccount(testAccount)
	repo.StartAccount(second)

	snap := repo.Snapshot(domain.SyncStats{TotalAccounts: 2}, 3*time.Second)

	require.Len(t, snap.AccountResults, 2)
	assert.Equal(t, testAccount.Name, snap.AccountResults[0].AccountName)
	assert.Equal(t, second.Name, snap.AccountResults[1].AccountName)
	assert.Equal(t, int64(3), snap.Duration)
	assert.Equal(t, 2, snap.SyncStats.TotalAccounts)
}
