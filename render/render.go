// Package render rasterizes an [avatar.RenderRequest] into PNG bytes: a solid
// background with the initials centered on it.
//
// Fonts are named by font spec (see internal/fonts) and parsed once per
// [Renderer]. A Renderer is safe for concurrent use.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log/slog"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"tools.zach/dev/letteravatar/avatar"
	"tools.zach/dev/letteravatar/internal/fonts"
)

// ErrEmptyInitials is returned when a request has nothing to draw.
var ErrEmptyInitials = errors.New("empty initials")

// Renderer implements [avatar.Rasterizer] with golang.org/x/image.
type Renderer struct {
	loader    *fonts.Loader
	fallbacks map[string]string

	mu    sync.Mutex
	cache map[string]*opentype.Font
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithFallback makes the renderer try fallback whenever spec cannot be
// loaded.
func WithFallback(spec, fallback string) Option {
	return func(r *Renderer) { r.fallbacks[spec] = fallback }
}

// New returns a Renderer loading fonts through loader. A nil loader only
// resolves builtin fonts and absolute paths.
func New(loader *fonts.Loader, opts ...Option) *Renderer {
	if loader == nil {
		loader = &fonts.Loader{}
	}
	r := &Renderer{
		loader:    loader,
		fallbacks: make(map[string]string),
		cache:     make(map[string]*opentype.Font),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Font returns the parsed font for spec, loading it on first use.
func (r *Renderer) Font(ctx context.Context, spec string) (*opentype.Font, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.cache[spec]; ok {
		return f, nil
	}
	data, used, err := r.loader.Resolve(ctx, spec, r.fallbacks[spec])
	if err != nil {
		return nil, fmt.Errorf("load font %q: %w", spec, err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", used, err)
	}
	if used != spec {
		slog.Warn("font unavailable, using fallback", "font", spec, "fallback", used)
	}
	r.cache[spec] = f
	return f, nil
}

// Rasterize draws req and returns the PNG encoding.
func (r *Renderer) Rasterize(ctx context.Context, req avatar.RenderRequest) ([]byte, error) {
	if req.Initials == "" {
		return nil, ErrEmptyInitials
	}
	if req.Width <= 0 || req.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", req.Width, req.Height)
	}
	if req.FontSizePx <= 0 {
		return nil, fmt.Errorf("invalid font size %v", req.FontSizePx)
	}

	otFont, err := r.Font(ctx, req.FontPath)
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(otFont, &opentype.FaceOptions{
		Size:    req.FontSizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	defer face.Close()

	img := image.NewNRGBA(image.Rect(0, 0, req.Width, req.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(req.Colors.Background.NRGBA()), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(req.Colors.Text.NRGBA()),
		Face: face,
		Dot:  Origin(face, req),
	}
	d.DrawString(req.Initials)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Origin returns the dot position that centers the inked bounds of
// req.Initials on both axes within the box starting at (BoxOffsetX,
// BoxOffsetY) and spanning the canvas size.
func Origin(face font.Face, req avatar.RenderRequest) fixed.Point26_6 {
	bounds, _ := font.BoundString(face, req.Initials)
	glyphW := bounds.Max.X - bounds.Min.X
	glyphH := bounds.Max.Y - bounds.Min.Y

	boxX := fixed.Int26_6(req.BoxOffsetX * 64)
	boxY := fixed.Int26_6(req.BoxOffsetY * 64)
	return fixed.Point26_6{
		X: boxX + (fixed.I(req.Width)-glyphW)/2 - bounds.Min.X,
		Y: boxY + (fixed.I(req.Height)-glyphH)/2 - bounds.Min.Y,
	}
}

var _ avatar.Rasterizer = (*Renderer)(nil)
