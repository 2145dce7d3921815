package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"scanpass/internal/domain/scan"
	"scanpass/internal/infrastructure/storage"
)

type Servicer interface {
	Append(ctx context.Context, e Entry) error
	ListFor(ctx context.Context, userID string) ([]Entry, error)
	ClearFor(ctx context.Context, userID string) (int, error)
}

// Service - журнал сканирований, новые записи первыми.
// Каждое изменение сразу сохраняется.
type Service struct {
	mu   sync.Mutex
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "history"),
	}
}

func (s *Service) load(ctx context.Context) ([]json.RawMessage, error) {
	items, err := s.repo.Load(ctx)
	if errors.Is(err, storage.ErrCorrupt) {
		s.log.Warn("history is corrupt, starting empty", "error", err)
		return nil, nil
	}
	return items, err
}

// Append добавляет запись в начало журнала
func (s *Service) Append(ctx context.Context, e Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}

	next := make([]json.RawMessage, 0, len(items)+1)
	next = append(next, raw)
	next = append(next, items...)

	if err := s.repo.Save(ctx, next); err != nil {
		return err
	}
	s.log.Debug("entry appended", "account_id", e.AccountID, "user_id", e.ScannedBy)
	return nil
}

// ListFor возвращает записи пользователя в порядке журнала
func (s *Service) ListFor(ctx context.Context, userID string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0)
	for _, raw := range items {
		e, ok := s.decode(raw)
		if ok && e.ScannedBy == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ClearFor удаляет записи пользователя; остальные сохраняются байт в байт
func (s *Service) ClearFor(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	kept := make([]json.RawMessage, 0, len(items))
	for _, raw := range items {
		if e, ok := s.decode(raw); ok && e.ScannedBy == userID {
			continue
		}
		kept = append(kept, raw)
	}

	removed := len(items) - len(kept)
	if err := s.repo.Save(ctx, kept); err != nil {
		return 0, err
	}
	s.log.Info("history cleared", "user_id", userID, "removed", removed)
	return removed, nil
}

// Record принимает результат сканера
func (s *Service) Record(ctx context.Context, c scan.Captured) error {
	return s.Append(ctx, FromCaptured(c))
}

func (s *Service) decode(raw json.RawMessage) (Entry, bool) {
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		s.log.Warn("skipping malformed history entry", "error", err)
		return Entry{}, false
	}
	return e, true
}
