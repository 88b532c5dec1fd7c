//go:build windows

package ffi

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// loadLibrary opens the native overlay engine DLL.
func loadLibrary(path string) (uintptr, error) {
	dll, err := windows.LoadDLL(path)
	if err != nil {
		return 0, fmt.Errorf("LoadDLL failed: %w", err)
	}
	// The HMODULE handle, usable with purego symbol registration.
	return uintptr(dll.Handle), nil
}
