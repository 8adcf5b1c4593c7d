package domain

import "time"

// SyncStats holds run-level totals across all synced accounts.
type SyncStats struct {
	TotalAccounts int     `json:"total_accounts"`
	TotalArticles int     `json:"total_articles"`
	NewArticles   int     `json:"new_articles"`
	Published     int     `json:"published"`
	Errors        int     `json:"errors"`
	Restricted    int     `json:"restricted"`
	EmptyContent  int     `json:"empty_content"`
	TotalCost     float64 `json:"total_cost"`
}

// AccountSyncResult aggregates one account's sync pass. TotalArticles is
// the count reported by the upstream, len(Articles) is what was actually
// materialized. Restricted is tracked apart from Errors so operators can
// tell "retry later" from "will never succeed".
type AccountSyncResult struct {
	AccountName   string     `json:"account_name"`
	TotalArticles int        `json:"total_articles"`
	NewArticles   int        `json:"new_articles"`
	Published     int        `json:"published"`
	Errors        int        `json:"errors"`
	Restricted    int        `json:"restricted"`
	EmptyContent  int        `json:"empty_content"`
	Cost          float64    `json:"cost"`
	Articles      []*Article `json:"articles"`
}

// RunSnapshot is the durable unit of persistence for one run.
type RunSnapshot struct {
	SyncStats      SyncStats            `json:"sync_stats"`
	AccountResults []*AccountSyncResult `json:"account_results"`
	Duration       int64                `json:"duration"` // seconds
	CreatedAt      time.Time            `json:"created_at"`
}
