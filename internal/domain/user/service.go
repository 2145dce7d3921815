package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Authenticate(ctx context.Context, login, password string) (Identity, error)
	Lookup(ctx context.Context, id string) (Identity, error)
}

type Service struct {
	repo      Repository
	validator Validator
	log       *slog.Logger
	dummyHash []byte
}

func NewService(repo Repository, validator Validator, log *slog.Logger) *Service {
	// хэш для сравнения при неизвестном логине, чтобы время ответа не выдавало причину отказа
	dummy, _ := bcrypt.GenerateFromPassword([]byte("scanpass-dummy"), bcrypt.MinCost)
	return &Service{
		repo:      repo,
		validator: validator,
		log:       log.With("component", "user_service"),
		dummyHash: dummy,
	}
}

// Authenticate проверяет пару логин/пароль.
// Любой отказ возвращается как ErrInvalidCredentials без указания поля.
func (s *Service) Authenticate(ctx context.Context, login, password string) (Identity, error) {
	if err := s.validator.ValidateLogin(login); err != nil {
		s.log.Debug("login rejected by validator", "error", err)
		return Identity{}, ErrInvalidCredentials
	}

	acc, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return Identity{}, fmt.Errorf("find account: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return Identity{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return Identity{}, ErrInvalidCredentials
	}

	return acc.Identity, nil
}

// Lookup возвращает учетную запись по идентификатору
func (s *Service) Lookup(ctx context.Context, id string) (Identity, error) {
	acc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Identity{}, err
	}
	return acc.Identity, nil
}
