package scan

import (
	"errors"

	"scanpass/internal/domain/camera"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrRecognitionFailure  = errors.New("qr code not recognized")
	ErrNotScanning         = errors.New("camera is not scanning")
	ErrCaptureInProgress   = errors.New("capture already in progress")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrDisposed            = errors.New("scanner is closed")
)

// Message - текст ошибки для пользователя
func Message(err error) string {
	var ue *camera.UnavailableError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ue):
		return ue.Error()
	case errors.Is(err, ErrInsufficientBalance):
		return "Insufficient balance. Please top up your credits."
	case errors.Is(err, ErrRecognitionFailure):
		return "QR Code not recognized"
	case errors.Is(err, ErrNotAuthenticated):
		return "Please sign in to scan."
	}
	return "Scan failed"
}
