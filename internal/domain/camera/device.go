package camera

import (
	"regexp"
	"runtime"
)

var mobileUserAgent = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// Signals - признаки окружения для определения класса устройства
type Signals struct {
	UserAgent string
	GOOS      string
}

// CurrentSignals собирает признаки текущего процесса
func CurrentSignals(userAgent string) Signals {
	return Signals{
		UserAgent: userAgent,
		GOOS:      runtime.GOOS,
	}
}

// DetectDeviceClass определяет мобильное устройство по ОС или строке User-Agent
func DetectDeviceClass(s Signals) DeviceClass {
	switch s.GOOS {
	case "android", "ios":
		return DeviceMobile
	}
	if mobileUserAgent.MatchString(s.UserAgent) {
		return DeviceMobile
	}
	return DeviceLaptop
}

// DefaultFacing - направление по умолчанию для класса устройства
func DefaultFacing(class DeviceClass) Facing {
	if class == DeviceMobile {
		return FacingBack
	}
	return FacingFront
}
