package avatar

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"tools.zach/dev/letteravatar/palette"
)

// Builder assembles avatars with chained setters. Its name, initials length
// and colors persist between generation calls and are overwritten, never
// reset. A Builder must not be shared between goroutines.
type Builder struct {
	cfg    Config
	src    palette.Source
	name   string
	n      int
	colors palette.Pair
}

// Option configures a [Builder] at construction.
type Option func(*Builder)

// WithRand sets the random source used for palette draws. Tests pass a seeded
// *rand.Rand to get reproducible colors.
func WithRand(src palette.Source) Option {
	return func(b *Builder) { b.src = src }
}

// New returns a Builder for cfg. Zero fields of cfg take their
// [DefaultConfig] values. One random palette pair is drawn here so that a
// Builder used without [Builder.Color] still has colors.
func New(cfg Config, opts ...Option) *Builder {
	b := &Builder{cfg: cfg.withDefaults(), n: 1}
	for _, opt := range opts {
		opt(b)
	}
	b.name = b.cfg.DefaultUserName
	b.colors = palette.Random(b.src)
	return b
}

// Config returns the effective configuration of b.
func (b *Builder) Config() Config { return b.cfg }

// UserName sets the display name. The name is normalized when a request is
// built, not here.
func (b *Builder) UserName(name string) *Builder {
	b.name = name
	return b
}

// Len sets how many code points of the name become initials. Values below 1
// leave the current length in place.
func (b *Builder) Len(n int) *Builder {
	if n > 0 {
		b.n = n
	}
	return b
}

// Color sets the text and background color. Both must be valid "#RGB",
// "#RRGGBB" or "r,g,b" strings; otherwise a fresh random palette pair
// replaces the current one.
func (b *Builder) Color(text, background string) *Builder {
	pair, ok := palette.Resolve(text, background, b.src)
	if !ok {
		slog.Debug("avatar colors rejected, using palette", "text", text, "background", background)
	}
	b.colors = pair
	return b
}

// ColorSlice is [Builder.Color] for a {text, background} slice. Any length
// other than two draws a random palette pair.
func (b *Builder) ColorSlice(colors []string) *Builder {
	if len(colors) != 2 {
		b.colors = palette.Random(b.src)
		return b
	}
	return b.Color(colors[0], colors[1])
}

// Name returns the current, unnormalized display name.
func (b *Builder) Name() string { return b.name }

// Colors returns the current color pair.
func (b *Builder) Colors() palette.Pair { return b.colors }

// Request builds the [RenderRequest] for the current state of b.
func (b *Builder) Request() RenderRequest {
	return BuildRenderRequest(b.cfg, b.name, b.n, b.colors)
}

// Make applies per-call overrides and returns the resulting request. A
// non-empty name replaces the name, n above 0 replaces the length, and
// exactly two colors replace the pair. Other values keep the current state.
func (b *Builder) Make(name string, colors []string, n int) RenderRequest {
	if name != "" {
		b.UserName(name)
	}
	b.Len(n)
	if len(colors) == 2 {
		b.Color(colors[0], colors[1])
	}
	return b.Request()
}

// Render rasterizes the current request with r.
func (b *Builder) Render(ctx context.Context, r Rasterizer) ([]byte, error) {
	req := b.Request()
	data, err := r.Rasterize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("render avatar %q: %w", req.Initials, err)
	}
	return data, nil
}

// ServePNG applies the overrides like [Builder.Make], renders with r and
// writes the PNG to w with [WritePNG]. Nothing is written to w when
// rendering fails.
func (b *Builder) ServePNG(ctx context.Context, w http.ResponseWriter, r Rasterizer, name string, colors []string, n int) error {
	b.Make(name, colors, n)
	data, err := b.Render(ctx, r)
	if err != nil {
		return err
	}
	return WritePNG(w, data)
}
