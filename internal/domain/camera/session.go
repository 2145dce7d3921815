package camera

import (
	"context"
	"sync"

	"golang.org/x/exp/slog"
)

// Session владеет не более чем одним живым видеопотоком
type Session struct {
	mu         sync.Mutex
	capability Capability
	class      DeviceClass
	facing     Facing
	stream     Stream
	closed     bool
	log        *slog.Logger
}

// NewSession создает сессию; направление по умолчанию зависит от класса устройства
func NewSession(capability Capability, class DeviceClass, log *slog.Logger) *Session {
	return &Session{
		capability: capability,
		class:      class,
		facing:     DefaultFacing(class),
		log:        log.With("component", "camera"),
	}
}

// Acquire открывает поток с направлением facing, предварительно освобождая прежний.
// Ошибка всегда совместима с ErrUnavailable.
func (s *Session) Acquire(ctx context.Context, facing Facing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.facing = facing
	return s.acquireLocked(ctx)
}

func (s *Session) acquireLocked(ctx context.Context) error {
	if s.closed {
		return Unavailable("", ErrClosed)
	}

	s.releaseLocked()

	stream, err := s.capability.Acquire(ctx, DefaultConstraints(s.facing))
	if err != nil {
		s.log.Warn("camera acquire failed", "facing", s.facing, "error", err)
		return Unavailable("", err)
	}

	s.stream = stream
	s.log.Debug("camera acquired", "facing", s.facing)
	return nil
}

// Release останавливает поток; повторный вызов ничего не делает
func (s *Session) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseLocked()
}

func (s *Session) releaseLocked() {
	if s.stream == nil {
		return
	}
	s.stream.Stop()
	s.stream = nil
	s.log.Debug("camera released")
}

// SwitchFacing меняет направление на противоположное.
// На ноутбуке переключение недоступно.
func (s *Session) SwitchFacing(ctx context.Context) (Facing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.class != DeviceMobile {
		return s.facing, ErrSwitchUnsupported
	}
	return s.setFacingLocked(ctx, s.facing.Opposite())
}

// SetFacing выбирает направление явно; доступно на любом устройстве.
// Если поток открыт, он переоткрывается с новым направлением.
func (s *Session) SetFacing(ctx context.Context, f Facing) (Facing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setFacingLocked(ctx, f)
}

func (s *Session) setFacingLocked(ctx context.Context, f Facing) (Facing, error) {
	if f == s.facing {
		return f, nil
	}
	s.facing = f
	if s.stream == nil {
		return f, nil
	}
	return f, s.acquireLocked(ctx)
}

// Close освобождает поток; после закрытия Acquire невозможен
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.releaseLocked()
	s.closed = true
	return nil
}

func (s *Session) Facing() Facing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facing
}

func (s *Session) DeviceClass() DeviceClass {
	return s.class
}

func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stream != nil
}

// CanSwitch - показывать ли переключатель направления
func (s *Session) CanSwitch() bool {
	return s.class == DeviceMobile
}
