//go:build darwin && ios

package popover

// detectDarwinPlatform returns iOS on gomobile darwin builds
func detectDarwinPlatform() Platform {
	return PlatformIOS
}
