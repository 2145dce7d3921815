package camera

import (
	"context"
	"fmt"
	"strings"
)

// Facing - направление камеры
type Facing string

const (
	FacingFront Facing = "front"
	FacingBack  Facing = "back"
)

// Opposite возвращает противоположное направление
func (f Facing) Opposite() Facing {
	if f == FacingFront {
		return FacingBack
	}
	return FacingFront
}

// ParseFacing принимает front/back, а также user/environment
func ParseFacing(s string) (Facing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "front", "user":
		return FacingFront, nil
	case "back", "environment", "rear":
		return FacingBack, nil
	}
	return "", fmt.Errorf("unknown facing %q", s)
}

// DeviceClass - класс устройства, определяемый один раз при старте
type DeviceClass string

const (
	DeviceLaptop DeviceClass = "laptop"
	DeviceMobile DeviceClass = "mobile"
)

// IdealResolution - желаемая сторона квадратного кадра
const IdealResolution = 720

// Constraints - параметры запроса видеопотока
type Constraints struct {
	Facing Facing
	Width  int
	Height int
}

func DefaultConstraints(f Facing) Constraints {
	return Constraints{
		Facing: f,
		Width:  IdealResolution,
		Height: IdealResolution,
	}
}

// Stream - живой видеопоток. Stop освобождает устройство.
type Stream interface {
	Stop()
}

// Capability - платформенный доступ к камере
type Capability interface {
	Acquire(ctx context.Context, c Constraints) (Stream, error)
}
