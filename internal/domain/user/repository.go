package user

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type Repository interface {
	FindByLogin(ctx context.Context, login string) (Account, error)
	FindByID(ctx context.Context, id string) (Account, error)
}

// StaticRepository - неизменяемая таблица учетных записей в памяти
type StaticRepository struct {
	byLogin map[string]Account
	byID    map[string]Account
}

// NewStaticRepository хэширует пароли seeds и строит таблицу.
// Идентификаторы и логины должны быть уникальны.
func NewStaticRepository(seeds []Seed, validator Validator, cost int) (*StaticRepository, error) {
	r := &StaticRepository{
		byLogin: make(map[string]Account, len(seeds)),
		byID:    make(map[string]Account, len(seeds)),
	}

	for _, seed := range seeds {
		if err := validator.ValidateSeed(seed); err != nil {
			return nil, err
		}
		if _, ok := r.byID[seed.ID]; ok {
			return nil, fmt.Errorf("%w: id %s", ErrDuplicate, seed.ID)
		}
		if _, ok := r.byLogin[seed.Username]; ok {
			return nil, fmt.Errorf("%w: username %s", ErrDuplicate, seed.Username)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("Хэш пароля: %w", err)
		}

		acc := Account{Identity: seed.Identity, PasswordHash: string(hash)}
		r.byID[seed.ID] = acc
		r.byLogin[seed.Username] = acc
	}

	return r, nil
}

func (r *StaticRepository) FindByLogin(_ context.Context, login string) (Account, error) {
	acc, ok := r.byLogin[login]
	if !ok {
		return Account{}, ErrNotFound
	}
	return acc, nil
}

func (r *StaticRepository) FindByID(_ context.Context, id string) (Account, error) {
	acc, ok := r.byID[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return acc, nil
}
