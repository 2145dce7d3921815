package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/exp/slog"

	"scanpass/internal/domain/user"
	"scanpass/internal/infrastructure/storage"
)

const (
	currentUserKey   = "currentUser"
	balanceKeyPrefix = "balance_"
)

// BalanceKey - ключ хранилища с последним известным балансом пользователя
func BalanceKey(userID string) string {
	return balanceKeyPrefix + userID
}

type Repository interface {
	// LoadCurrent возвращает ErrNoSession или storage.ErrCorrupt
	LoadCurrent(ctx context.Context) (user.Identity, error)
	// LoadBalance возвращает storage.ErrNotFound или storage.ErrCorrupt
	LoadBalance(ctx context.Context, userID string) (int, error)
	// Save атомарно записывает снимок сессии и баланс пользователя
	Save(ctx context.Context, identity user.Identity) error
	ClearCurrent(ctx context.Context) error
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

func (r *repository) LoadCurrent(ctx context.Context) (user.Identity, error) {
	raw, err := r.kv.Get(ctx, currentUserKey)
	if errors.Is(err, storage.ErrNotFound) {
		return user.Identity{}, ErrNoSession
	}
	if err != nil {
		return user.Identity{}, fmt.Errorf("load session: %w", err)
	}

	var id user.Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		return user.Identity{}, fmt.Errorf("%w: session snapshot: %v", storage.ErrCorrupt, err)
	}
	if id.ID == "" || id.Balance < 0 {
		return user.Identity{}, fmt.Errorf("%w: session snapshot is incomplete", storage.ErrCorrupt)
	}
	return id, nil
}

func (r *repository) LoadBalance(ctx context.Context, userID string) (int, error) {
	raw, err := r.kv.Get(ctx, BalanceKey(userID))
	if err != nil {
		return 0, err
	}

	balance, err := strconv.Atoi(raw)
	if err != nil || balance < 0 {
		return 0, fmt.Errorf("%w: balance %q", storage.ErrCorrupt, raw)
	}
	return balance, nil
}

func (r *repository) Save(ctx context.Context, identity user.Identity) error {
	snapshot, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	return r.kv.SetMany(ctx, map[string]string{
		currentUserKey:          string(snapshot),
		BalanceKey(identity.ID): strconv.Itoa(identity.Balance),
	})
}

func (r *repository) ClearCurrent(ctx context.Context) error {
	return r.kv.Remove(ctx, currentUserKey)
}
