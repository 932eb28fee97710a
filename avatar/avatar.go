// Package avatar builds letter avatars: a colored square showing the initials
// of a display name.
//
// The pipeline is name -> canonical name -> initials -> colors ->
// [RenderRequest]. [BuildRenderRequest] is the pure form of it; [Builder] wraps
// it with chained setters and keeps state between calls. Pixels are produced
// by a [Rasterizer] such as render.Renderer.
//
// Nothing in this package returns an error for bad input: unusable names fall
// back to [Config.DefaultUserName], invalid colors fall back to a random
// palette pair, and overlong initials lengths are clamped.
package avatar

import (
	"context"

	"tools.zach/dev/letteravatar/palette"
)

// ///////////////////////////////////////////////
// Configuration
// ///////////////////////////////////////////////

// Default values used by [DefaultConfig].
const (
	DefaultWidth    = 200
	DefaultHeight   = 200
	DefaultUserName = "wmstudio"

	// DefaultLatinFont and DefaultCJKFont are font specs understood by
	// render.Renderer. The builtin Go Medium face stands in for Roboto Medium
	// when no font directory is configured.
	DefaultLatinFont = "builtin:gomedium"
	DefaultCJKFont   = "google:Noto Sans SC:500"
)

// Config holds the canvas geometry and defaults shared by every avatar built
// with it.
type Config struct {
	// Width and Height are the canvas size in pixels.
	Width, Height int
	// DefaultUserName replaces names that contain no letters.
	DefaultUserName string
	// LatinFont is the font spec used when the initials contain an ASCII letter.
	LatinFont string
	// CJKFont is the font spec used for all other initials.
	CJKFont string
}

// DefaultConfig returns a 200x200 configuration with the "wmstudio" default
// name and the default font specs.
func DefaultConfig() Config {
	return Config{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		DefaultUserName: DefaultUserName,
		LatinFont:       DefaultLatinFont,
		CJKFont:         DefaultCJKFont,
	}
}

// withDefaults fills zero fields from [DefaultConfig].
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.DefaultUserName == "" {
		c.DefaultUserName = def.DefaultUserName
	}
	if c.LatinFont == "" {
		c.LatinFont = def.LatinFont
	}
	if c.CJKFont == "" {
		c.CJKFont = def.CJKFont
	}
	return c
}

// ///////////////////////////////////////////////
// Render Request
// ///////////////////////////////////////////////

// RenderRequest is the fully resolved description of one avatar, independent
// of the rendering backend.
type RenderRequest struct {
	// Initials is the text to draw.
	Initials string
	// Latin reports whether Initials contains an ASCII letter.
	Latin bool
	// FontPath is the font spec selected by Latin.
	FontPath string
	// FontSizePx is the font size in pixels.
	FontSizePx float64
	// BoxOffsetX and BoxOffsetY shift the centering box from the canvas origin.
	BoxOffsetX, BoxOffsetY float64
	// Colors is the text and background color.
	Colors palette.Pair
	// Width and Height are the canvas size in pixels.
	Width, Height int
}

// Rasterizer draws a [RenderRequest] and encodes it as PNG.
type Rasterizer interface {
	Rasterize(ctx context.Context, req RenderRequest) ([]byte, error)
}

// Padding returns the inner margin for a canvas of the given size:
// 30px per 256px of the shorter side.
func Padding(width, height int) float64 {
	return 30 * (float64(min(width, height)) / 256)
}

// FontSize returns the pixel size that fits n initials inside the padded
// shorter side of the canvas.
func FontSize(width, height, n int) float64 {
	if n < 1 {
		n = 1
	}
	short := float64(min(width, height))
	return (short - 2*Padding(width, height)) / float64(n)
}

// CanonicalName normalizes name with [NormalizeName] and falls back to the
// configured default user name, unnormalized, when nothing usable is left.
func (c Config) CanonicalName(name string) string {
	if canonical, ok := NormalizeName(name); ok {
		return canonical
	}
	return c.withDefaults().DefaultUserName
}

// BuildRenderRequest resolves name, initials length n and colors into a
// [RenderRequest]. It has no side effects; calling it twice with the same
// arguments yields the same request.
func BuildRenderRequest(cfg Config, name string, n int, colors palette.Pair) RenderRequest {
	cfg = cfg.withDefaults()
	initials := Initials(cfg.CanonicalName(name), n)
	count := max(clampLen(initials, n), 1)

	req := RenderRequest{
		Initials:   initials,
		Latin:      IsLatin(initials),
		FontSizePx: FontSize(cfg.Width, cfg.Height, count),
		Colors:     colors,
		Width:      cfg.Width,
		Height:     cfg.Height,
	}
	if req.Latin {
		req.FontPath = cfg.LatinFont
	} else {
		// Ideographs sit right of center in their em box.
		req.FontPath = cfg.CJKFont
		req.BoxOffsetX = -req.FontSizePx / 12
	}
	return req
}
