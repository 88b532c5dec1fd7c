package popover

import "runtime"

// Platform represents the current operating system/platform
type Platform string

const (
	PlatformMacOS   Platform = "darwin"
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformLinux   Platform = "linux"
	PlatformWindows Platform = "windows"
	PlatformWeb     Platform = "js"
	PlatformUnknown Platform = "unknown"
)

// CurrentPlatform returns the platform the app is running on
func CurrentPlatform() Platform {
	switch runtime.GOOS {
	case "darwin":
		// On darwin, distinguish iOS from macOS via the ios build tag
		// set during gomobile compilation.
		return detectDarwinPlatform()
	case "android":
		return PlatformAndroid
	case "linux":
		return PlatformLinux
	case "windows":
		return PlatformWindows
	case "js":
		return PlatformWeb
	default:
		return PlatformUnknown
	}
}

// IsMobile returns true if running on iOS or Android
func IsMobile() bool {
	p := CurrentPlatform()
	return p == PlatformIOS || p == PlatformAndroid
}

// IsDesktop returns true if running on macOS, Linux, or Windows
func IsDesktop() bool {
	p := CurrentPlatform()
	return p == PlatformMacOS || p == PlatformLinux || p == PlatformWindows
}

// HasSafeArea returns true if the platform reports nonzero safe-area
// insets (status bars, notches, home indicators). Desktop and web
// surfaces occupy their full window.
func HasSafeArea() bool {
	return IsMobile()
}

// SupportsHideSystemUI returns true if the platform can hide system UI
// while a popup is shown.
func SupportsHideSystemUI() bool {
	return IsMobile()
}

// ResolveDisplayMode downgrades a requested display mode to what the
// current platform can honor: DisplayFullScreen falls back to
// DisplayCover where system UI cannot be hidden.
func ResolveDisplayMode(m DisplayMode) DisplayMode {
	if m == DisplayFullScreen && !SupportsHideSystemUI() {
		return DisplayCover
	}
	return m
}
