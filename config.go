package popover

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultDurationMS     = 300
	DefaultEasing         = "cubic-out"
	DefaultOverlayColor   = "#00000080"
	DefaultReadyTimeoutMS = 500
)

// Config holds host-tunable popup defaults, loadable from a TOML file.
// Fields left zero fall back to the package defaults at resolution time,
// so a partial file only overrides what it names.
type Config struct {
	Animation AnimationConfig `toml:"animation"`
	Overlay   OverlayConfig   `toml:"overlay"`
	Surface   SurfaceConfig   `toml:"surface"`
}

// AnimationConfig holds default transition settings.
type AnimationConfig struct {
	DurationMS int    `toml:"duration_ms"` // Transition duration (0 = default)
	Easing     string `toml:"easing"`      // Easing name, see EasingByName
	Kind       string `toml:"kind"`        // Animation kind name, see AnimationKindByName
}

// OverlayConfig holds the dimming layer settings.
type OverlayConfig struct {
	Color string `toml:"color"` // #RRGGBB or #RRGGBBAA
}

// SurfaceConfig holds native-surface timing settings.
type SurfaceConfig struct {
	ReadyTimeoutMS int `toml:"ready_timeout_ms"` // Max wait for a measured size
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Animation: AnimationConfig{
			DurationMS: DefaultDurationMS,
			Easing:     DefaultEasing,
			Kind:       AnimationFade.String(),
		},
		Overlay: OverlayConfig{
			Color: DefaultOverlayColor,
		},
		Surface: SurfaceConfig{
			ReadyTimeoutMS: DefaultReadyTimeoutMS,
		},
	}
}

// LoadConfig reads a TOML config file over the defaults. A missing file is
// not an error; the defaults are returned.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultKind returns the configured default animation kind.
func (c *Config) DefaultKind() AnimationKind {
	if k, ok := AnimationKindByName(c.Animation.Kind); ok {
		return k
	}
	return AnimationFade
}

func (c *Config) animationDuration() time.Duration {
	if c.Animation.DurationMS > 0 {
		return time.Duration(c.Animation.DurationMS) * time.Millisecond
	}
	return DefaultDurationMS * time.Millisecond
}

func (c *Config) animationEasing() EasingFunc {
	if fn := EasingByName(c.Animation.Easing); fn != nil {
		return fn
	}
	return EaseOutCubic
}

func (c *Config) overlayColor() uint32 {
	if rgba, ok := ParseColor(c.Overlay.Color); ok {
		return rgba
	}
	rgba, _ := ParseColor(DefaultOverlayColor)
	return rgba
}

func (c *Config) surfaceReadyTimeout() time.Duration {
	if c.Surface.ReadyTimeoutMS > 0 {
		return time.Duration(c.Surface.ReadyTimeoutMS) * time.Millisecond
	}
	return DefaultReadyTimeoutMS * time.Millisecond
}

// ParseColor parses "#RRGGBB" or "#RRGGBBAA" into packed 0xRRGGBBAA.
// A missing alpha component means fully opaque.
func ParseColor(s string) (uint32, bool) {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 6:
		v, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return 0, false
		}
		return uint32(v)<<8 | 0xFF, true
	case 8:
		v, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return 0, false
		}
		return uint32(v), true
	default:
		return 0, false
	}
}
