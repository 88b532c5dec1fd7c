// Package ffi bridges the popup core to the native overlay engine. The
// engine library exposes a small C ABI for creating overlay surfaces and
// driving the primitive transform/opacity operations the animation layer
// needs; everything above those primitives (keyframe sequencing, layout,
// lifecycle) stays on the Go side.
package ffi

import (
	"errors"
	"sync"
)

// SurfaceID identifies a native overlay surface.
type SurfaceID uint32

// Native entry points, registered after the library loads.
var (
	fnCreateSurface  func(x, y, w, h float32, overlayRGBA uint32) uint32
	fnDestroySurface func(id uint32) int32
	fnSetTransform   func(id uint32, tx, ty, sx, sy, rx, ry, rz, opacity float32) int32
	fnSetOverlay     func(id uint32, opacity float32) int32
	fnSurfaceSize    func(id uint32, outW, outH *float32) int32
)

var (
	loadMu sync.Mutex
	loaded bool
)

// ErrNotLoaded is returned when the native library has not been loaded.
var ErrNotLoaded = errors.New("ffi: native overlay library not loaded")

// ErrSurface is returned when the native side rejects a surface operation,
// typically because the surface was already destroyed.
var ErrSurface = errors.New("ffi: native surface operation failed")

// Load opens the native overlay library at the given path and registers
// its entry points. Safe to call more than once; later calls are no-ops.
func Load(path string) error {
	loadMu.Lock()
	defer loadMu.Unlock()

	if loaded {
		return nil
	}
	lib, err := loadLibrary(path)
	if err != nil {
		return err
	}
	registerFuncs(lib)
	loaded = true
	return nil
}

// Loaded reports whether the native library is available.
func Loaded() bool {
	loadMu.Lock()
	defer loadMu.Unlock()
	return loaded
}

// CreateSurface creates a native overlay surface covering the given bounds
// with the given overlay tint (packed 0xRRGGBBAA).
func CreateSurface(x, y, w, h float32, overlayRGBA uint32) (SurfaceID, error) {
	if !Loaded() {
		return 0, ErrNotLoaded
	}
	return SurfaceID(fnCreateSurface(x, y, w, h, overlayRGBA)), nil
}

// DestroySurface tears down a native overlay surface.
func DestroySurface(id SurfaceID) error {
	if !Loaded() {
		return ErrNotLoaded
	}
	if fnDestroySurface(uint32(id)) != 0 {
		return ErrSurface
	}
	return nil
}

// SetTransform applies a content transform to a surface: translation in
// logical units, per-axis scale, per-axis rotation in radians, opacity.
func SetTransform(id SurfaceID, tx, ty, sx, sy, rx, ry, rz, opacity float32) error {
	if !Loaded() {
		return ErrNotLoaded
	}
	if fnSetTransform(uint32(id), tx, ty, sx, sy, rx, ry, rz, opacity) != 0 {
		return ErrSurface
	}
	return nil
}

// SetOverlayOpacity sets a surface's dimming layer opacity, 0-1.
func SetOverlayOpacity(id SurfaceID, opacity float32) error {
	if !Loaded() {
		return ErrNotLoaded
	}
	if fnSetOverlay(uint32(id), opacity) != 0 {
		return ErrSurface
	}
	return nil
}

// SurfaceSize returns a surface's measured content size in logical units.
// Zero dimensions mean the native side has not completed its first layout
// pass yet.
func SurfaceSize(id SurfaceID) (w, h float32, err error) {
	if !Loaded() {
		return 0, 0, ErrNotLoaded
	}
	if fnSurfaceSize(uint32(id), &w, &h) != 0 {
		return 0, 0, ErrSurface
	}
	return w, h, nil
}
