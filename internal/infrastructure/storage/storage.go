package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound - ключ отсутствует в хранилище
	ErrNotFound = errors.New("key not found")
	// ErrCorrupt - сохраненное значение не удалось разобрать
	ErrCorrupt = errors.New("persisted data is corrupt")
)

// KV - долговременное хранилище ключ-значение.
// Get возвращает ErrNotFound, если ключа нет.
// SetMany записывает все пары атомарно: читатель видит либо все новые значения, либо ни одного.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, values map[string]string) error
	Remove(ctx context.Context, key string) error
	Close() error
}
