package ffi

import "github.com/ebitengine/purego"

// registerFuncs binds the native entry points once the library is open.
// The symbol names are the stable C ABI shared with the engine.
func registerFuncs(lib uintptr) {
	purego.RegisterLibFunc(&fnCreateSurface, lib, "popover_create_surface")
	purego.RegisterLibFunc(&fnDestroySurface, lib, "popover_destroy_surface")
	purego.RegisterLibFunc(&fnSetTransform, lib, "popover_set_transform")
	purego.RegisterLibFunc(&fnSetOverlay, lib, "popover_set_overlay")
	purego.RegisterLibFunc(&fnSurfaceSize, lib, "popover_surface_size")
}
