package service

import (
	"context"
	"errors"
	"log/slog"

	"wechat_fetcher/internal/config"
	"wechat_fetcher/internal/domain"
	"wechat_fetcher/internal/repository"
	"wechat_fetcher/internal/source/dajiala"
)

// AccountSyncer drives pagination and content backfill for one account.
// Per-item failures never abort the page; per-page failures never abort
// the account. Only a first-page listing failure aborts the whole pass.
type AccountSyncer struct {
	api        ContentAPI
	repo       *repository.Repository
	publisher  Publisher // nil disables publishing
	logger     *slog.Logger
	cfg        config.SyncConfig
	checkpoint func(ctx context.Context) error // nil disables checkpoints

	attempted map[string]struct{} // article ids fetched this run
}

func NewAccountSyncer(
	api ContentAPI,
	repo *repository.Repository,
	publisher Publisher,
	logger *slog.Logger,
	cfg config.SyncConfig,
	checkpoint func(ctx context.Context) error,
) *AccountSyncer {
	return &AccountSyncer{
		api:        api,
		repo:       repo,
		publisher:  publisher,
		logger:     logger,
		cfg:        cfg,
		checkpoint: checkpoint,
		attempted:  make(map[string]struct{}),
	}
}

// Sync runs one full listing+backfill pass for the account. The page
// count comes from the first page's response, capped by MaxPages when
// set; the first page's data is reused rather than fetched twice.
func (s *AccountSyncer) Sync(ctx context.Context, account domain.Account) *domain.AccountSyncResult {
	logger := s.logger.With("account", account.Name, "biz", account.Biz)
	result := s.repo.StartAccount(account)

	first, err := s.api.FetchListing(ctx, account.Biz, 0)
	if err != nil {
		logger.Error("first listing page failed, aborting account", "error", err)
		result.Errors++
		return result
	}

	result.TotalArticles = first.TotalNum
	result.Cost += first.Cost

	pages := first.TotalPage
	if s.cfg.MaxPages > 0 && pages > s.cfg.MaxPages {
		pages = s.cfg.MaxPages
	}

	logger.Info("starting account sync",
		"total_num", first.TotalNum,
		"total_page", first.TotalPage,
		"pages", pages,
	)

	processed := 0
	for page := 0; page < pages; page++ {
		listing := first
		if page > 0 {
			listing, err = s.api.FetchListing(ctx, account.Biz, page)
			if err != nil {
				logger.Warn("listing page failed, skipping", "page", page, "error", err)
				result.Errors++
				continue
			}
			result.Cost += listing.Cost
		}

		for _, item := range listing.Items {
			article, isNew := s.repo.Upsert(item, account)
			if isNew {
				result.NewArticles++
			}

			// Feeds shift between pages; the same item can appear
			// twice in one run. A failed fetch is not retried within
			// the run, and never billed twice.
			if s.cfg.FetchContent && s.repo.NeedsContentFetch(article) {
				if _, done := s.attempted[article.ID]; !done {
					s.attempted[article.ID] = struct{}{}
					s.backfill(ctx, article, result, logger)
				}
			}

			if isNew {
				s.publish(ctx, article, account, result, logger)
			}

			processed++
			if s.checkpoint != nil && s.cfg.CheckpointEvery > 0 && processed%s.cfg.CheckpointEvery == 0 {
				if err := s.checkpoint(ctx); err != nil {
					logger.Warn("checkpoint failed", "error", err)
				}
			}
		}
	}

	logger.Info("account sync finished",
		"materialized", len(result.Articles),
		"new", result.NewArticles,
		"errors", result.Errors,
		"restricted", result.Restricted,
		"cost", result.Cost,
	)

	return result
}

// backfill makes at most one content fetch attempt for the article per
// run. The attributed cost is recorded whether or not the fetch
// succeeded; only the generic failures count towards Errors.
func (s *AccountSyncer) backfill(ctx context.Context, article *domain.Article, result *domain.AccountSyncResult, logger *slog.Logger) {
	var fetched *dajiala.ContentResult
	var err error
	if s.cfg.UseDetailAPI {
		fetched, err = s.api.FetchDetail(ctx, article.URL)
	} else {
		fetched, err = s.api.FetchContent(ctx, article.URL)
	}

	var cost float64
	var raw string
	if fetched != nil {
		cost = fetched.Cost
		raw = fetched.Content
	}
	result.Cost += cost

	recorded := s.repo.ApplyContent(article, raw, cost, err)
	switch {
	case recorded == nil:
	case errors.Is(recorded, dajiala.ErrRestricted):
		result.Restricted++
		logger.Warn("content restricted", "title", article.Title)
	case errors.Is(recorded, dajiala.ErrEmptyContent):
		result.EmptyContent++
		result.Errors++
	default:
		result.Errors++
		logger.Warn("content fetch failed", "title", article.Title, "error", recorded)
	}
}

func (s *AccountSyncer) publish(ctx context.Context, article *domain.Article, account domain.Account, result *domain.AccountSyncResult, logger *slog.Logger) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, article, account.Name, true); err != nil {
		result.Errors++
		logger.Warn("publish failed", "title", article.Title, "error", err)
		return
	}
	result.Published++
}
