package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"scanpass/internal/domain/user"
	"scanpass/internal/infrastructure/storage"
	"scanpass/internal/infrastructure/storage/memory"
	"scanpass/internal/utils/logger"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) LoadCurrent(ctx context.Context) (user.Identity, error) {
	args := m.Called(ctx)
	return args.Get(0).(user.Identity), args.Error(1)
}

func (m *MockRepository) LoadBalance(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, identity user.Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *MockRepository) ClearCurrent(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newUsers(t *testing.T) user.Servicer {
	t.Helper()
	repo, err := user.NewStaticRepository(user.DemoAccounts, user.NewAccountValidator(), bcrypt.MinCost)
	require.NoError(t, err)
	return user.NewService(repo, user.NewAccountValidator(), logger.Discard())
}

func newService(t *testing.T, kv storage.KV) *Service {
	t.Helper()
	return NewService(NewRepo(kv, logger.Discard()), newUsers(t), logger.Discard())
}

func TestService_Login(t *testing.T) {
	kv := memory.New()
	s := newService(t, kv)
	ctx := context.Background()

	id, err := s.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "1", id.ID)
	assert.Equal(t, 100, id.Balance)
	assert.True(t, s.IsAuthenticated())

	raw, err := kv.Get(ctx, "currentUser")
	require.NoError(t, err)
	assert.Contains(t, raw, `"username":"admin"`)

	bal, err := kv.Get(ctx, "balance_1")
	require.NoError(t, err)
	assert.Equal(t, "100", bal)
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	s := newService(t, memory.New())
	ctx := context.Background()

	_, err := s.Login(ctx, "admin", "nope")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	assert.False(t, s.IsAuthenticated())

	// активная сессия не меняется при неудачном входе
	_, err = s.Login(ctx, "demo", "demo123")
	require.NoError(t, err)
	_, err = s.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "2", cur.ID)
}

func TestService_DecreaseBalance(t *testing.T) {
	kv := memory.New()
	s := newService(t, kv)
	ctx := context.Background()

	_, err := s.Login(ctx, "user", "user123")
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		require.NoError(t, s.DecreaseBalance(ctx))
	}

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, 0, cur.Balance)

	bal, err := kv.Get(ctx, "balance_3")
	require.NoError(t, err)
	assert.Equal(t, "0", bal)
}

func TestService_DecreaseBalance_NoSession(t *testing.T) {
	kv := memory.New()
	s := newService(t, kv)

	require.NoError(t, s.DecreaseBalance(context.Background()))
	assert.Equal(t, 0, kv.Len())
}

func TestService_ReloginRestoresBalance(t *testing.T) {
	kv := memory.New()
	s := newService(t, kv)
	ctx := context.Background()

	_, err := s.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.NoError(t, s.DecreaseBalance(ctx))
	require.NoError(t, s.DecreaseBalance(ctx))
	require.NoError(t, s.Logout(ctx))

	assert.False(t, s.IsAuthenticated())
	_, err = kv.Get(ctx, "currentUser")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	id, err := s.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, 98, id.Balance)
}

func TestService_Login_CorruptBalanceFallsBackToDefault(t *testing.T) {
	kv := memory.New()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "balance_2", "lots"))

	s := newService(t, kv)
	id, err := s.Login(ctx, "demo", "demo123")
	require.NoError(t, err)
	assert.Equal(t, 50, id.Balance)

	bal, err := kv.Get(ctx, "balance_2")
	require.NoError(t, err)
	assert.Equal(t, "50", bal)
}

func TestService_Restore(t *testing.T) {
	kv := memory.New()
	ctx := context.Background()

	first := newService(t, kv)
	_, err := first.Login(ctx, "demo", "demo123")
	require.NoError(t, err)
	require.NoError(t, first.DecreaseBalance(ctx))

	second := newService(t, kv)
	require.NoError(t, second.Restore(ctx))

	cur, ok := second.Current()
	require.True(t, ok)
	assert.Equal(t, "2", cur.ID)
	assert.Equal(t, 49, cur.Balance)
}

func TestService_Restore_Discards(t *testing.T) {
	tests := []struct {
		name     string
		snapshot string
	}{
		{name: "not json", snapshot: "{broken"},
		{name: "no id", snapshot: `{"username":"admin","balance":3}`},
		{name: "negative balance", snapshot: `{"id":"1","balance":-1}`},
		{name: "unknown user", snapshot: `{"id":"42","username":"ghost","balance":7}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := memory.New()
			ctx := context.Background()
			require.NoError(t, kv.Set(ctx, "currentUser", tt.snapshot))

			s := newService(t, kv)
			require.NoError(t, s.Restore(ctx))
			assert.False(t, s.IsAuthenticated())

			_, err := kv.Get(ctx, "currentUser")
			assert.ErrorIs(t, err, storage.ErrNotFound)
		})
	}
}

func TestService_Restore_Empty(t *testing.T) {
	s := newService(t, memory.New())
	require.NoError(t, s.Restore(context.Background()))
	assert.False(t, s.IsAuthenticated())
}

func TestService_DecreaseBalance_SaveErrorKeepsMemory(t *testing.T) {
	mockRepo := new(MockRepository)
	s := NewService(mockRepo, newUsers(t), logger.Discard())
	ctx := context.Background()

	mockRepo.On("LoadBalance", mock.Anything, "1").Return(0, storage.ErrNotFound)
	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(id user.Identity) bool {
		return id.Balance == 100
	})).Return(nil).Once()
	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(id user.Identity) bool {
		return id.Balance == 99
	})).Return(errors.New("disk full")).Once()

	_, err := s.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	err = s.DecreaseBalance(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	cur, _ := s.Current()
	assert.Equal(t, 100, cur.Balance)
	mockRepo.AssertExpectations(t)
}

func TestService_Login_SaveErrorLeavesSessionUnchanged(t *testing.T) {
	mockRepo := new(MockRepository)
	s := NewService(mockRepo, newUsers(t), logger.Discard())

	mockRepo.On("LoadBalance", mock.Anything, "2").Return(0, storage.ErrNotFound)
	mockRepo.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := s.Login(context.Background(), "demo", "demo123")
	require.Error(t, err)
	assert.False(t, s.IsAuthenticated())
}

func TestService_Logout_Error(t *testing.T) {
	mockRepo := new(MockRepository)
	s := NewService(mockRepo, newUsers(t), logger.Discard())

	mockRepo.On("ClearCurrent", mock.Anything).Return(errors.New("io"))

	err := s.Logout(context.Background())
	assert.Error(t, err)
}

// failingKV отказывает на атомарной записи
type failingKV struct {
	*memory.Storage
}

func (f failingKV) SetMany(context.Context, map[string]string) error {
	return errors.New("write failed")
}

func TestRepository_SaveIsAllOrNothing(t *testing.T) {
	kv := failingKV{Storage: memory.New()}
	repo := NewRepo(kv, logger.Discard())
	ctx := context.Background()

	err := repo.Save(ctx, user.Identity{ID: "1", Balance: 5})
	require.Error(t, err)

	_, err = kv.Get(ctx, "currentUser")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = kv.Get(ctx, "balance_1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
