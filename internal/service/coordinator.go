package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"wechat_fetcher/internal/config"
	"wechat_fetcher/internal/domain"
	"wechat_fetcher/internal/repository"
)

// ErrBudgetExhausted aborts a run before any paid work when the
// remaining balance is below the configured floor.
var ErrBudgetExhausted = errors.New("balance below configured floor")

// BatchCoordinator iterates the configured accounts in declared order,
// aggregates run statistics and owns checkpointed persistence. It is
// the single writer of the snapshot file.
type BatchCoordinator struct {
	api       ContentAPI
	repo      *repository.Repository
	store     SnapshotStore
	publisher Publisher // nil disables publishing
	accounts  []domain.Account
	logger    *slog.Logger
	cfg       config.SyncConfig
}

func NewBatchCoordinator(
	api ContentAPI,
	repo *repository.Repository,
	store SnapshotStore,
	publisher Publisher,
	accounts []domain.Account,
	logger *slog.Logger,
	cfg config.SyncConfig,
) *BatchCoordinator {
	return &BatchCoordinator{
		api:       api,
		repo:      repo,
		store:     store,
		publisher: publisher,
		accounts:  accounts,
		logger:    logger.With("component", "coordinator"),
		cfg:       cfg,
	}
}

// RunOnce executes one complete sync run and returns the persisted
// snapshot. Inactive accounts are skipped entirely; per-account
// failures are recorded in the snapshot rather than propagated.
func (c *BatchCoordinator) RunOnce(ctx context.Context) (*domain.RunSnapshot, error) {
	start := time.Now()

	probeBiz := c.firstActiveBiz()
	if probeBiz == "" {
		return nil, errors.New("no active accounts configured")
	}

	balance, err := c.api.Balance(ctx, probeBiz)
	if err != nil {
		return nil, fmt.Errorf("query balance: %w", err)
	}
	if balance.RemainMoney < c.cfg.MinBalance {
		return nil, fmt.Errorf("%w: %.2f remaining, floor %.2f",
			ErrBudgetExhausted, balance.RemainMoney, c.cfg.MinBalance)
	}
	c.logger.Info("balance checked", "remaining", balance.RemainMoney)

	prev, err := c.store.LoadLatest(ctx)
	if err != nil {
		c.logger.Warn("could not load previous snapshot, starting fresh", "error", err)
	} else if prev != nil {
		c.repo.Seed(prev)
		c.logger.Info("seeded from previous snapshot", "accounts", len(prev.AccountResults))
	}

	var stats domain.SyncStats
	// The probe itself is a billed listing call.
	stats.TotalCost += balance.Cost

	// Stats lag by up to one account inside a checkpoint; the article
	// sets themselves are always current.
	checkpoint := func(ctx context.Context) error {
		return c.store.SaveCheckpoint(ctx, c.repo.Snapshot(stats, time.Since(start)))
	}

	for _, account := range c.accounts {
		if !account.IsActive {
			c.logger.Debug("skipping inactive account", "account", account.Name)
			continue
		}

		syncer := NewAccountSyncer(c.api, c.repo, c.publisher, c.logger, c.cfg, checkpoint)
		result := syncer.Sync(ctx, account)

		stats.TotalAccounts++
		stats.TotalArticles += len(result.Articles)
		stats.NewArticles += result.NewArticles
		stats.Published += result.Published
		stats.Errors += result.Errors
		stats.Restricted += result.Restricted
		stats.EmptyContent += result.EmptyContent
		stats.TotalCost += result.Cost
	}

	snap := c.repo.Snapshot(stats, time.Since(start))
	if err := c.store.SaveFinal(ctx, snap); err != nil {
		return snap, fmt.Errorf("persist snapshot: %w", err)
	}

	c.logger.Info("run completed",
		"accounts", stats.TotalAccounts,
		"articles", stats.TotalArticles,
		"new", stats.NewArticles,
		"errors", stats.Errors,
		"cost", stats.TotalCost,
		"duration", time.Since(start),
	)

	return snap, nil
}

func (c *BatchCoordinator) firstActiveBiz() string {
	for _, account := range c.accounts {
		if account.IsActive {
			return account.Biz
		}
	}
	return ""
}
