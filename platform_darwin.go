//go:build darwin && !ios

package popover

// detectDarwinPlatform returns macOS on non-iOS darwin builds
func detectDarwinPlatform() Platform {
	return PlatformMacOS
}
