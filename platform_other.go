//go:build !darwin

package popover

// detectDarwinPlatform is never reached off darwin; it exists so
// CurrentPlatform links on every platform.
func detectDarwinPlatform() Platform {
	return PlatformUnknown
}
