package scan

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"scanpass/internal/domain/camera"
	"scanpass/internal/domain/user"
)

// State - состояние сканера
type State string

const (
	StateIdle     State = "idle"
	StateScanning State = "scanning"
	StateSuccess  State = "success"
	StateError    State = "error"
)

// DefaultLowBalanceThreshold - баланс, начиная с которого показывается предупреждение
const DefaultLowBalanceThreshold = 5

// Identities - доступ сканера к сессии пользователя
type Identities interface {
	Current() (user.Identity, bool)
	DecreaseBalance(ctx context.Context) error
}

// Camera - доступ сканера к камере
type Camera interface {
	Acquire(ctx context.Context, f camera.Facing) error
	Release()
	SwitchFacing(ctx context.Context) (camera.Facing, error)
	SetFacing(ctx context.Context, f camera.Facing) (camera.Facing, error)
	Facing() camera.Facing
	Active() bool
	DeviceClass() camera.DeviceClass
	CanSwitch() bool
}

// Captured - результат вместе с тем, кто сканировал
type Captured struct {
	Result
	ScannedBy     string
	ScannedByName string
}

// Sink получает каждый успешный результат
type Sink interface {
	Record(ctx context.Context, c Captured) error
}

type SinkFunc func(ctx context.Context, c Captured) error

func (f SinkFunc) Record(ctx context.Context, c Captured) error {
	return f(ctx, c)
}

// View - снимок состояния для отображения
type View struct {
	State           State
	Result          *Result
	Error           string
	Balance         int
	Authenticated   bool
	UserID          string
	UserName        string
	CameraActive    bool
	DeviceClass     camera.DeviceClass
	Facing          camera.Facing
	CanSwitchFacing bool
	Capturing       bool
	LowBalance      bool
	NoCredits       bool
}

type Option func(*Scanner)

func WithLowBalanceThreshold(n int) Option {
	return func(s *Scanner) {
		s.lowBalance = n
	}
}

// Scanner - конечный автомат idle/scanning/success/error.
// Каждое действие, отменяющее текущую попытку, увеличивает generation;
// результат попытки применяется, только если generation не изменилась.
type Scanner struct {
	mu         sync.Mutex
	identities Identities
	camera     Camera
	decoder    Decoder
	sink       Sink
	log        *slog.Logger
	lowBalance int

	state      State
	result     *Result
	err        error
	generation uint64
	inFlight   bool
	cancel     context.CancelFunc
	disposed   bool
	wg         sync.WaitGroup
}

func NewScanner(identities Identities, cam Camera, decoder Decoder, sink Sink, log *slog.Logger, opts ...Option) *Scanner {
	s := &Scanner{
		identities: identities,
		camera:     cam,
		decoder:    decoder,
		sink:       sink,
		log:        log.With("component", "scanner"),
		lowBalance: DefaultLowBalanceThreshold,
		state:      StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartCamera открывает камеру: idle|error -> scanning.
// При отказе камеры сканер переходит в error.
func (s *Scanner) StartCamera(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return ErrDisposed
	}
	if s.state == StateScanning || s.state == StateSuccess {
		return nil
	}

	s.invalidateLocked()
	if err := s.camera.Acquire(ctx, s.camera.Facing()); err != nil {
		s.setErrorLocked(err)
		return err
	}

	s.state = StateScanning
	s.result = nil
	s.err = nil
	s.log.Info("camera started", "facing", s.camera.Facing())
	return nil
}

// CaptureAndScan запускает попытку распознавания.
// Возвращаемый канал закрывается, когда попытка завершена (или отброшена).
func (s *Scanner) CaptureAndScan(ctx context.Context) (<-chan struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return nil, ErrDisposed
	}
	if s.state != StateScanning {
		return nil, ErrNotScanning
	}
	if s.inFlight {
		return nil, ErrCaptureInProgress
	}

	identity, ok := s.identities.Current()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	if identity.Balance <= 0 {
		s.log.Info("capture refused", "user_id", identity.ID, "reason", "insufficient balance")
		return nil, ErrInsufficientBalance
	}

	attemptID := uuid.NewString()
	captureCtx, cancel := context.WithCancel(ctx)
	s.inFlight = true
	s.cancel = cancel
	gen := s.generation
	done := make(chan struct{})

	s.log.Debug("capture started", "attempt_id", attemptID, "user_id", identity.ID)

	s.wg.Add(1)
	go s.resolve(captureCtx, gen, attemptID, identity, done)

	return done, nil
}

func (s *Scanner) resolve(ctx context.Context, gen uint64, attemptID string, identity user.Identity, done chan<- struct{}) {
	defer s.wg.Done()
	defer close(done)

	res, decodeErr := s.decoder.Decode(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.With("attempt_id", attemptID, "user_id", identity.ID)

	if s.disposed || gen != s.generation {
		log.Debug("discarding stale capture result")
		return
	}

	s.inFlight = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	// запись результата не зависит от отмены попытки
	persistCtx := context.WithoutCancel(ctx)

	if cur, ok := s.identities.Current(); !ok || cur.ID != identity.ID {
		log.Warn("discarding capture result, session changed")
		return
	}

	if decodeErr != nil {
		// нераспознанный код и отказ транспорта показываются по-разному
		s.state = StateError
		s.err = decodeErr
		s.result = nil
		log.Info("capture failed", "error", decodeErr)
		return
	}

	s.state = StateSuccess
	s.result = &res
	s.err = nil
	log.Info("capture succeeded", "account_id", res.AccountID)

	if err := s.identities.DecreaseBalance(persistCtx); err != nil {
		log.Error("decrease balance", "error", err)
	}

	captured := Captured{
		Result:        res,
		ScannedBy:     identity.ID,
		ScannedByName: identity.Name,
	}
	if err := s.sink.Record(persistCtx, captured); err != nil {
		log.Error("record history", "account_id", res.AccountID, "error", err)
	}
}

// Reset очищает результат: success|error -> scanning, если камера открыта, иначе idle
func (s *Scanner) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}
	if s.state != StateSuccess && s.state != StateError {
		return
	}

	s.result = nil
	s.err = nil
	if s.camera.Active() {
		s.state = StateScanning
	} else {
		s.state = StateIdle
	}
}

// StopCamera закрывает камеру и отменяет незавершенную попытку: любое состояние -> idle
func (s *Scanner) StopCamera() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}

	s.invalidateLocked()
	s.camera.Release()
	s.state = StateIdle
	s.result = nil
	s.err = nil
	s.log.Info("camera stopped")
}

// SwitchFacing переключает камеру на противоположную
func (s *Scanner) SwitchFacing(ctx context.Context) (camera.Facing, error) {
	return s.changeFacing(func() (camera.Facing, error) {
		return s.camera.SwitchFacing(ctx)
	})
}

// SetFacing выбирает направление камеры явно
func (s *Scanner) SetFacing(ctx context.Context, f camera.Facing) (camera.Facing, error) {
	return s.changeFacing(func() (camera.Facing, error) {
		return s.camera.SetFacing(ctx, f)
	})
}

func (s *Scanner) changeFacing(change func() (camera.Facing, error)) (camera.Facing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return s.camera.Facing(), ErrDisposed
	}

	wasActive := s.camera.Active()
	f, err := change()
	if err != nil {
		if wasActive && !s.camera.Active() {
			// поток потерян при переоткрытии
			s.invalidateLocked()
			s.setErrorLocked(err)
		}
		return f, err
	}
	return f, nil
}

// Close освобождает камеру; незавершенная попытка будет отброшена
func (s *Scanner) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return nil
	}
	s.invalidateLocked()
	s.disposed = true
	s.camera.Release()
	s.state = StateIdle
	return nil
}

// Wait ждет завершения всех запущенных попыток
func (s *Scanner) Wait() {
	s.wg.Wait()
}

func (s *Scanner) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		State:           s.state,
		Error:           Message(s.err),
		CameraActive:    s.camera.Active(),
		DeviceClass:     s.camera.DeviceClass(),
		Facing:          s.camera.Facing(),
		CanSwitchFacing: s.camera.CanSwitch(),
		Capturing:       s.inFlight,
	}
	if s.result != nil {
		r := *s.result
		v.Result = &r
	}

	if id, ok := s.identities.Current(); ok {
		v.Authenticated = true
		v.UserID = id.ID
		v.UserName = id.Name
		v.Balance = id.Balance
		v.NoCredits = id.Balance == 0
		v.LowBalance = id.Balance > 0 && id.Balance <= s.lowBalance
	}
	return v
}

// Err - последняя ошибка сканера
func (s *Scanner) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Scanner) invalidateLocked() {
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.inFlight = false
}

func (s *Scanner) setErrorLocked(err error) {
	s.state = StateError
	s.err = err
	s.result = nil
	s.log.Warn("scanner error", "error", err)
}
