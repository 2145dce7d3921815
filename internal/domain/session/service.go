package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"scanpass/internal/domain/user"
	"scanpass/internal/infrastructure/storage"
)

type Servicer interface {
	Restore(ctx context.Context) error
	Login(ctx context.Context, username, password string) (user.Identity, error)
	Logout(ctx context.Context) error
	DecreaseBalance(ctx context.Context) error
	Current() (user.Identity, bool)
	IsAuthenticated() bool
}

// Service хранит текущего пользователя и его баланс.
// Каждое изменение сначала записывается в хранилище и только потом применяется в памяти.
type Service struct {
	mu      sync.RWMutex
	repo    Repository
	users   user.Servicer
	log     *slog.Logger
	current *user.Identity
}

func NewService(repo Repository, users user.Servicer, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		users: users,
		log:   log.With("component", "session"),
	}
}

// Restore поднимает сессию из сохраненного снимка.
// Поврежденный снимок или снимок неизвестного пользователя удаляется.
func (s *Service) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.repo.LoadCurrent(ctx)
	switch {
	case errors.Is(err, ErrNoSession):
		s.current = nil
		return nil
	case errors.Is(err, storage.ErrCorrupt):
		s.log.Warn("discarding corrupt session snapshot", "error", err)
		s.current = nil
		return s.repo.ClearCurrent(ctx)
	case err != nil:
		return err
	}

	known, err := s.users.Lookup(ctx, snap.ID)
	if errors.Is(err, user.ErrNotFound) {
		s.log.Warn("discarding session of unknown user", "user_id", snap.ID)
		s.current = nil
		return s.repo.ClearCurrent(ctx)
	}
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}

	restored := known
	restored.Balance = snap.Balance
	if balance, err := s.repo.LoadBalance(ctx, snap.ID); err == nil {
		restored.Balance = balance
	}

	s.current = &restored
	s.log.Debug("session restored", "user_id", restored.ID, "balance", restored.Balance)
	return nil
}

// Login открывает сессию; баланс берется из последнего сохраненного значения,
// а если его нет - из учетной записи
func (s *Service) Login(ctx context.Context, username, password string) (user.Identity, error) {
	id, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		s.log.Info("login failed")
		return user.Identity{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	balance, err := s.repo.LoadBalance(ctx, id.ID)
	switch {
	case err == nil:
		id.Balance = balance
	case errors.Is(err, storage.ErrNotFound):
	case errors.Is(err, storage.ErrCorrupt):
		s.log.Warn("stored balance is corrupt, using default", "user_id", id.ID, "error", err)
	default:
		return user.Identity{}, fmt.Errorf("load balance: %w", err)
	}

	if err := s.repo.Save(ctx, id); err != nil {
		return user.Identity{}, fmt.Errorf("save session: %w", err)
	}

	s.current = &id
	s.log.Info("user logged in", "user_id", id.ID, "balance", id.Balance)
	return id, nil
}

// Logout закрывает сессию. Сохраненные балансы пользователей не трогаются.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.ClearCurrent(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	if s.current != nil {
		s.log.Info("user logged out", "user_id", s.current.ID)
	}
	s.current = nil
	return nil
}

// DecreaseBalance списывает один кредит.
// Без сессии или при нулевом балансе ничего не делает.
func (s *Service) DecreaseBalance(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.Balance <= 0 {
		return nil
	}

	next := *s.current
	next.Balance--

	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("save balance: %w", err)
	}

	s.current = &next
	s.log.Debug("balance decreased", "user_id", next.ID, "balance", next.Balance)
	return nil
}

func (s *Service) Current() (user.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return user.Identity{}, false
	}
	return *s.current, true
}

func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}
