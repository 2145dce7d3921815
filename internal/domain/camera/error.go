package camera

import "errors"

var (
	ErrUnavailable       = errors.New("camera unavailable")
	ErrSwitchUnsupported = errors.New("facing switch is not supported on this device")
)

// DefaultUnavailableReason - сообщение для пользователя при отказе в доступе к камере
const DefaultUnavailableReason = "Failed to access camera. Please grant permission."

// UnavailableError - отказ в получении видеопотока с причиной для пользователя
type UnavailableError struct {
	Reason string
	Err    error
}

func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ErrUnavailable.Error()
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

// Unavailable оборачивает err в UnavailableError, если он еще не обернут
func Unavailable(reason string, err error) error {
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return err
	}
	if reason == "" {
		reason = DefaultUnavailableReason
	}
	return &UnavailableError{Reason: reason, Err: err}
}

// ErrClosed - сессия камеры уже закрыта владельцем
var ErrClosed = errors.New("camera session is closed")
