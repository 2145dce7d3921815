package camera

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanpass/internal/utils/logger"
)

func TestDetectDeviceClass(t *testing.T) {
	tests := []struct {
		name    string
		signals Signals
		want    DeviceClass
	}{
		{name: "desktop chrome", signals: Signals{UserAgent: "Mozilla/5.0 (X11; Linux x86_64) Chrome/120", GOOS: "linux"}, want: DeviceLaptop},
		{name: "iphone", signals: Signals{UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0)", GOOS: "linux"}, want: DeviceMobile},
		{name: "android lowercase", signals: Signals{UserAgent: "mozilla/5.0 (linux; android 14)"}, want: DeviceMobile},
		{name: "opera mini", signals: Signals{UserAgent: "Opera Mini/8.0"}, want: DeviceMobile},
		{name: "android os", signals: Signals{GOOS: "android"}, want: DeviceMobile},
		{name: "ios", signals: Signals{GOOS: "ios"}, want: DeviceMobile},
		{name: "empty", signals: Signals{}, want: DeviceLaptop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectDeviceClass(tt.signals))
		})
	}
}

func TestParseFacing(t *testing.T) {
	f, err := ParseFacing("environment")
	require.NoError(t, err)
	assert.Equal(t, FacingBack, f)

	f, err = ParseFacing(" Front ")
	require.NoError(t, err)
	assert.Equal(t, FacingFront, f)

	_, err = ParseFacing("sideways")
	assert.Error(t, err)
}

func TestNewSession_DefaultFacing(t *testing.T) {
	laptop := NewSession(NewSynthetic(), DeviceLaptop, logger.Discard())
	assert.Equal(t, FacingFront, laptop.Facing())
	assert.False(t, laptop.CanSwitch())

	mobile := NewSession(NewSynthetic(), DeviceMobile, logger.Discard())
	assert.Equal(t, FacingBack, mobile.Facing())
	assert.True(t, mobile.CanSwitch())
}

func TestSession_AcquireReleasesPrevious(t *testing.T) {
	cam := NewSynthetic()
	s := NewSession(cam, DeviceMobile, logger.Discard())
	ctx := context.Background()

	require.NoError(t, s.Acquire(ctx, FacingBack))
	require.NoError(t, s.Acquire(ctx, FacingFront))

	assert.Equal(t, 1, cam.Live())
	assert.Equal(t, 2, cam.Acquired())
	assert.Equal(t, Constraints{Facing: FacingFront, Width: 720, Height: 720}, cam.LastConstraints())
	assert.True(t, s.Active())
}

func TestSession_AcquireFailure(t *testing.T) {
	cam := NewSynthetic()
	s := NewSession(cam, DeviceLaptop, logger.Discard())
	ctx := context.Background()

	require.NoError(t, s.Acquire(ctx, FacingFront))
	cam.Fail(errors.New("NotAllowedError"))

	err := s.Acquire(ctx, FacingFront)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, DefaultUnavailableReason, err.Error())

	assert.False(t, s.Active())
	assert.Equal(t, 0, cam.Live())
}

func TestSession_ReleaseIdempotent(t *testing.T) {
	cam := NewSynthetic()
	s := NewSession(cam, DeviceLaptop, logger.Discard())

	s.Release()
	require.NoError(t, s.Acquire(context.Background(), FacingFront))
	s.Release()
	s.Release()

	assert.Equal(t, 0, cam.Live())
	assert.False(t, s.Active())
}

func TestSession_SwitchFacing(t *testing.T) {
	cam := NewSynthetic()
	s := NewSession(cam, DeviceMobile, logger.Discard())
	ctx := context.Background()

	// без потока только меняется предпочтение
	f, err := s.SwitchFacing(ctx)
	require.NoError(t, err)
	assert.Equal(t, FacingFront, f)
	assert.Equal(t, 0, cam.Acquired())

	require.NoError(t, s.Acquire(ctx, s.Facing()))
	f, err = s.SwitchFacing(ctx)
	require.NoError(t, err)
	assert.Equal(t, FacingBack, f)
	assert.Equal(t, 2, cam.Acquired())
	assert.Equal(t, 1, cam.Live())
	assert.Equal(t, FacingBack, cam.LastConstraints().Facing)
}

func TestSession_SwitchFacing_LaptopUnsupported(t *testing.T) {
	s := NewSession(NewSynthetic(), DeviceLaptop, logger.Discard())

	f, err := s.SwitchFacing(context.Background())
	assert.ErrorIs(t, err, ErrSwitchUnsupported)
	assert.Equal(t, FacingFront, f)
}

func TestSession_SetFacing_Laptop(t *testing.T) {
	cam := NewSynthetic()
	s := NewSession(cam, DeviceLaptop, logger.Discard())
	ctx := context.Background()
	require.NoError(t, s.Acquire(ctx, FacingFront))

	f, err := s.SetFacing(ctx, FacingBack)
	require.NoError(t, err)
	assert.Equal(t, FacingBack, f)
	assert.Equal(t, FacingBack, cam.LastConstraints().Facing)
	assert.Equal(t, 1, cam.Live())
}

func TestSession_SetFacing_ReacquireFails(t *testing.T) {
	cam := NewSynthetic()
	s := NewSession(cam, DeviceMobile, logger.Discard())
	ctx := context.Background()
	require.NoError(t, s.Acquire(ctx, FacingBack))

	cam.Fail(errors.New("busy"))
	_, err := s.SetFacing(ctx, FacingFront)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, s.Active())
	assert.Equal(t, 0, cam.Live())
}

func TestSession_Close(t *testing.T) {
	cam := NewSynthetic()
	s := NewSession(cam, DeviceMobile, logger.Discard())
	ctx := context.Background()
	require.NoError(t, s.Acquire(ctx, FacingBack))

	require.NoError(t, s.Close())
	assert.Equal(t, 0, cam.Live())

	err := s.Acquire(ctx, FacingBack)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSynthetic_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSynthetic().Acquire(ctx, DefaultConstraints(FacingFront))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeviceCapability(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	dev := NewDeviceCapability(filepath.Join(dir, "video*"))
	_, err := dev.Acquire(ctx, DefaultConstraints(FacingFront))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "No camera found.", err.Error())

	for _, name := range []string{"video0", "video2"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	stream, err := dev.Acquire(ctx, DefaultConstraints(FacingBack))
	require.NoError(t, err)
	ds := stream.(*deviceStream)
	assert.Equal(t, filepath.Join(dir, "video2"), ds.f.Name())
	stream.Stop()
	stream.Stop()
}
