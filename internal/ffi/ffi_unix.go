//go:build darwin || linux || ios || android

package ffi

import "github.com/ebitengine/purego"

// loadLibrary opens the native overlay engine on Unix-like systems.
func loadLibrary(path string) (uintptr, error) {
	const RTLD_LAZY = 0x1
	return purego.Dlopen(path, RTLD_LAZY)
}
