package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"

	"scanpass/internal/infrastructure/storage"
)

// Key - ключ хранилища с общим журналом всех пользователей
const Key = "scanHistory"

// Repository хранит журнал как JSON-массив.
// Элементы хранятся как есть, чтобы чужие записи не менялись при перезаписи.
type Repository interface {
	// Load возвращает storage.ErrCorrupt, если массив не разбирается
	Load(ctx context.Context) ([]json.RawMessage, error)
	Save(ctx context.Context, items []json.RawMessage) error
}

func NewRepo(kv storage.KV, log *slog.Logger) Repository {
	return &repository{
		kv:  kv,
		log: log,
	}
}

type repository struct {
	kv  storage.KV
	log *slog.Logger
}

func (r *repository) Load(ctx context.Context) ([]json.RawMessage, error) {
	raw, err := r.kv.Get(ctx, Key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: history: %v", storage.ErrCorrupt, err)
	}
	return items, nil
}

func (r *repository) Save(ctx context.Context, items []json.RawMessage) error {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = string(item)
	}
	if err := r.kv.Set(ctx, Key, "["+strings.Join(parts, ",")+"]"); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}
