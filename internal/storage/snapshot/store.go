// Package snapshot persists run snapshots as UTF-8 JSON files. The
// final file is written atomically (temp file + rename) so external
// consumers never observe a partial snapshot; checkpoints go to a
// distinct in-progress file and every completed run leaves a
// timestamped backup that is never deleted.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"wechat_fetcher/internal/domain"
)

const (
	finalFile        = "sync_results.json"
	inProgressFile   = "sync_results_inprogress.json"
	backupTimeFormat = "20060102_150405"
)

type Store struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

func NewStore(dir string, logger *slog.Logger) *Store {
	return &Store{dir: dir, logger: logger.With("component", "snapshot"), now: time.Now}
}

// SaveCheckpoint writes an intermediate snapshot to the in-progress
// location. A crash mid-run loses at most the progress since the last
// checkpoint.
func (s *Store) SaveCheckpoint(ctx context.Context, snap *domain.RunSnapshot) error {
	if err := s.writeAtomic(filepath.Join(s.dir, inProgressFile), snap); err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	s.logger.Debug("checkpoint saved", "articles", snap.SyncStats.TotalArticles)
	return nil
}

// SaveFinal writes the completed run snapshot atomically and keeps a
// timestamped immutable backup copy next to it.
func (s *Store) SaveFinal(ctx context.Context, snap *domain.RunSnapshot) error {
	finalPath := filepath.Join(s.dir, finalFile)
	if err := s.writeAtomic(finalPath, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	backupName := fmt.Sprintf("sync_results_%s.json", s.now().Format(backupTimeFormat))
	if err := s.writeAtomic(filepath.Join(s.dir, backupName), snap); err != nil {
		return fmt.Errorf("save snapshot backup: %w", err)
	}

	s.logger.Info("snapshot saved", "path", finalPath, "backup", backupName)
	return nil
}

// LoadLatest reads the most recent final snapshot. Returns (nil, nil)
// when no snapshot exists yet.
func (s *Store) LoadLatest(ctx context.Context) (*domain.RunSnapshot, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, finalFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap domain.RunSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snap, nil
}

func (s *Store) writeAtomic(path string, snap *domain.RunSnapshot) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
