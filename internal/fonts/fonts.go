// Package fonts resolves font specs to raw SFNT (TTF/OTF) bytes.
//
// A font spec is one of:
//
//   - "builtin:NAME": a Go font compiled into the binary ("gomedium",
//     "goregular", "gobold").
//   - "google:FAMILY:WEIGHT": a Google Fonts family downloaded through the
//     CSS API and cached on disk (e.g. "google:Noto Sans SC:500").
//   - anything else: a file path, relative paths being joined to [Loader.Dir].
//
// WOFF2 data from any source is converted to SFNT before it is returned.
package fonts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// ErrNoFont is returned by [Loader.Resolve] when neither the primary nor the
// fallback spec yields a font.
var ErrNoFont = errors.New("no usable font")

// Spec prefixes.
const (
	BuiltinPrefix = "builtin:"
	GooglePrefix  = "google:"
)

// builtins maps builtin font names to their TTF data.
var builtins = map[string][]byte{
	"gomedium":  gomedium.TTF,
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
}

// ///////////////////////////////////////////////
// Loader
// ///////////////////////////////////////////////

// Loader turns font specs into font bytes. The zero value loads builtins and
// absolute paths; set Dir for relative paths and CacheDir to keep Google
// Fonts downloads between runs. A Loader is safe for concurrent use.
type Loader struct {
	// Dir is the base directory for relative font paths.
	Dir string
	// CacheDir holds downloaded Google Fonts. Empty disables the cache.
	CacheDir string
	// CSSURL overrides the Google Fonts CSS endpoint.
	CSSURL string
}

// Load returns the SFNT bytes for spec.
func (l *Loader) Load(ctx context.Context, spec string) ([]byte, error) {
	switch {
	case spec == "":
		return nil, errors.New("empty font spec")
	case strings.HasPrefix(spec, BuiltinPrefix):
		name := strings.TrimPrefix(spec, BuiltinPrefix)
		data, ok := builtins[name]
		if !ok {
			return nil, fmt.Errorf("unknown builtin font %q", name)
		}
		return data, nil
	case strings.HasPrefix(spec, GooglePrefix):
		return l.fetchGoogle(ctx, spec)
	default:
		path := spec
		if !filepath.IsAbs(path) && l.Dir != "" {
			path = filepath.Join(l.Dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		return ToSFNT(path, data)
	}
}

// Resolve loads spec and, when that fails, fallback. Either may be empty. The
// returned string is the spec that produced the font. When both fail the
// error wraps [ErrNoFont].
func (l *Loader) Resolve(ctx context.Context, spec, fallback string) ([]byte, string, error) {
	var errs []error
	for _, s := range []string{spec, fallback} {
		if s == "" {
			continue
		}
		data, err := l.Load(ctx, s)
		if err == nil {
			return data, s, nil
		}
		slog.Debug("font spec unavailable", "spec", s, "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", s, err))
	}
	if len(errs) == 0 {
		return nil, "", ErrNoFont
	}
	return nil, "", fmt.Errorf("%w: %w", ErrNoFont, errors.Join(errs...))
}

// ///////////////////////////////////////////////
// WOFF2
// ///////////////////////////////////////////////

// ToSFNT converts WOFF2 data to SFNT. Other data is returned unchanged.
func ToSFNT(name string, data []byte) ([]byte, error) {
	if !IsWOFF2(name, data) {
		return data, nil
	}
	sfnt, err := font.ToSFNT(data)
	if err != nil {
		return nil, fmt.Errorf("convert woff2 to sfnt: %w", err)
	}
	return sfnt, nil
}

// IsWOFF2 checks whether font data is WOFF2 by extension or magic bytes.
// WOFF2 magic: 0x774F4632 ("wOF2")
func IsWOFF2(name string, data []byte) bool {
	if strings.HasSuffix(strings.ToLower(name), ".woff2") {
		return true
	}
	return len(data) >= 4 && string(data[:4]) == "wOF2"
}
