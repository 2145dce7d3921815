package camera

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"syscall"
)

// DefaultDeviceGlob - видеоустройства Linux (V4L2)
const DefaultDeviceGlob = "/dev/video*"

// DeviceCapability открывает узел видеоустройства.
// Фронтальной считается первая найденная камера, тыловой - последняя.
type DeviceCapability struct {
	glob string
}

func NewDeviceCapability(glob string) *DeviceCapability {
	if glob == "" {
		glob = DefaultDeviceGlob
	}
	return &DeviceCapability{glob: glob}
}

func (d *DeviceCapability) Acquire(ctx context.Context, c Constraints) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	devices, err := filepath.Glob(d.glob)
	if err != nil {
		return nil, Unavailable("Invalid camera device pattern.", err)
	}
	if len(devices) == 0 {
		return nil, Unavailable("No camera found.", fmt.Errorf("no devices match %s", d.glob))
	}
	sort.Strings(devices)

	path := devices[0]
	if c.Facing == FacingBack {
		path = devices[len(devices)-1]
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, Unavailable(reasonFor(err), err)
	}
	return &deviceStream{f: f}, nil
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return "Camera permission denied."
	case errors.Is(err, syscall.EBUSY):
		return "Camera is in use by another application."
	case errors.Is(err, fs.ErrNotExist):
		return "No camera found."
	}
	return DefaultUnavailableReason
}

type deviceStream struct {
	f    *os.File
	once sync.Once
}

func (s *deviceStream) Stop() {
	s.once.Do(func() {
		_ = s.f.Close()
	})
}
