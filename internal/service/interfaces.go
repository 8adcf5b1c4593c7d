package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"wechat_fetcher/internal/domain"
	"wechat_fetcher/internal/source/dajiala"
)

// ContentAPI is the metered upstream client. Implementations own call
// pacing and per-call cost attribution; callers never sleep.
type ContentAPI interface {
	FetchListing(ctx context.Context, biz string, page int) (*dajiala.ListingResult, error)
	FetchContent(ctx context.Context, articleURL string) (*dajiala.ContentResult, error)
	FetchDetail(ctx context.Context, articleURL string) (*dajiala.ContentResult, error)
	Balance(ctx context.Context, biz string) (*dajiala.BalanceResult, error)
}

// SnapshotStore persists run snapshots.
type SnapshotStore interface {
	SaveCheckpoint(ctx context.Context, snap *domain.RunSnapshot) error
	SaveFinal(ctx context.Context, snap *domain.RunSnapshot) error
	LoadLatest(ctx context.Context) (*domain.RunSnapshot, error)
}

// Publisher emits per-article discovery events for the external
// notification collaborator.
type Publisher interface {
	Publish(ctx context.Context, article *domain.Article, accountName string, isNew bool) error
	Close() error
}
