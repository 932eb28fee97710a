package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"tools.zach/dev/letteravatar/avatar"
	"tools.zach/dev/letteravatar/internal/config"
	"tools.zach/dev/letteravatar/internal/fonts"
	"tools.zach/dev/letteravatar/palette"
	"tools.zach/dev/letteravatar/render"
)

// ///////////////////////////////////////////////
// Jobs
// ///////////////////////////////////////////////

// job describes one avatar to produce. Zero fields fall back to config.
type job struct {
	Name       string
	Len        int
	Text       string
	Background string
	// Out is the destination file; "-" writes to stdout.
	Out string
}

// ///////////////////////////////////////////////
// App
// ///////////////////////////////////////////////

// app holds what every job shares: config, the font-caching renderer and
// the output settings.
type app struct {
	cfg       *config.Config
	avatarCfg avatar.Config
	renderer  avatar.Rasterizer
	// src is the palette random source; nil uses the process-wide generator.
	src    palette.Source
	mode   os.FileMode
	stdout io.Writer
}

func newApp(cfg *config.Config, dp DataPaths) *app {
	return &app{
		cfg:       cfg,
		avatarCfg: cfg.AvatarConfig(),
		renderer:  newRenderer(cfg, dp),
		mode:      cfg.FileMode(),
		stdout:    os.Stdout,
	}
}

// newRenderer builds a renderer loading fonts from the configured font dir,
// caching Google Fonts downloads under the data dir, with the configured
// fallbacks.
func newRenderer(cfg *config.Config, dp DataPaths) *render.Renderer {
	loader := &fonts.Loader{
		Dir:      cfg.FontDir(dp),
		CacheDir: dp.FontCache(),
	}
	var opts []render.Option
	for _, f := range [][2]string{
		{cfg.Fonts.Latin, cfg.Fonts.LatinFallback},
		{cfg.Fonts.CJK, cfg.Fonts.CJKFallback},
	} {
		if f[0] != "" && f[1] != "" && f[0] != f[1] {
			opts = append(opts, render.WithFallback(f[0], f[1]))
		}
	}
	return render.New(loader, opts...)
}

// builder returns a Builder configured for j. Colors follow the precedence:
// colors given in j, then the first matching [[colors.rules]] entry, then
// the [colors] default pair, then a random palette pair.
func (a *app) builder(j job) *avatar.Builder {
	b := avatar.New(a.avatarCfg, avatar.WithRand(a.src)).
		Len(a.cfg.Avatar.InitialsLen).
		Len(j.Len)
	// An empty name keeps the configured default user name.
	if j.Name != "" {
		b.UserName(j.Name)
	}

	text, bg := j.Text, j.Background
	if text == "" && bg == "" {
		text, bg = a.cfg.ColorsFor(b.Config().CanonicalName(b.Name()))
	}
	if text != "" || bg != "" {
		b.Color(text, bg)
	}
	return b
}

// generate renders j and writes it to j.Out.
func (a *app) generate(ctx context.Context, j job) error {
	b := a.builder(j)
	data, err := b.Render(ctx, a.renderer)
	if err != nil {
		return err
	}
	if err := a.write(j.Out, data); err != nil {
		return err
	}

	req := b.Request()
	slog.Info("avatar written",
		"name", j.Name,
		"initials", req.Initials,
		"colors", fmt.Sprintf("%s/%s", req.Colors.Text, req.Colors.Background),
		"out", j.Out,
		"size", humanize.Bytes(uint64(len(data))),
	)
	return nil
}

// write stores data at path, or copies it to stdout when path is "-".
func (a *app) write(path string, data []byte) error {
	if path == "-" {
		if _, err := a.stdout.Write(data); err != nil {
			return fmt.Errorf("write png to stdout: %w", err)
		}
		return nil
	}
	return avatar.WriteFile(path, data, a.mode)
}
