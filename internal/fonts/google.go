package fonts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"tools.zach/dev/letteravatar/internal/atomicfile"
)

// DefaultCSSURL is the Google Fonts CSS API endpoint.
const DefaultCSSURL = "https://fonts.googleapis.com/css2"

// userAgent is not a browser string, so Google answers with one unsubsetted
// TrueType file per family rather than unicode-range WOFF2 slices.
const userAgent = "letteravatar"

const (
	maxCSSBytes  = 1 << 20
	maxFontBytes = 32 << 20
)

// fontURLRe extracts the font file URL from the CSS response.
var fontURLRe = regexp.MustCompile(`url\((https?://[^)\s]+)\)`)

var (
	httpClient     *retryablehttp.Client
	httpClientOnce sync.Once
)

// getHTTPClient returns the shared retryable HTTP client, initializing it on
// first call.
func getHTTPClient() *retryablehttp.Client {
	httpClientOnce.Do(func() {
		httpClient = retryablehttp.NewClient()
		httpClient.RetryMax = 2
		httpClient.HTTPClient.Timeout = 30 * time.Second
		httpClient.Logger = nil
	})
	return httpClient
}

// ParseGoogleSpec parses a "google:Family:Weight" spec into its parts.
func ParseGoogleSpec(spec string) (family, weight string, ok bool) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) != 3 || parts[0] != "google" || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// cacheName returns the cache file name for a family and weight.
func cacheName(family, weight string) string {
	return strings.ReplaceAll(family, " ", "_") + "-" + weight + ".ttf"
}

// fetchGoogle returns the font for a google: spec, from the cache when
// possible. A failed cache write is logged and does not fail the fetch.
func (l *Loader) fetchGoogle(ctx context.Context, spec string) ([]byte, error) {
	family, weight, ok := ParseGoogleSpec(spec)
	if !ok {
		return nil, fmt.Errorf("invalid google font spec %q: expected google:FAMILY:WEIGHT", spec)
	}

	var cacheFile string
	if l.CacheDir != "" {
		cacheFile = filepath.Join(l.CacheDir, cacheName(family, weight))
		if data, err := os.ReadFile(cacheFile); err == nil {
			return data, nil
		}
	}

	endpoint := l.CSSURL
	if endpoint == "" {
		endpoint = DefaultCSSURL
	}
	cssURL := endpoint + "?family=" + url.QueryEscape(family) + ":wght@" + url.QueryEscape(weight)

	css, err := get(ctx, cssURL, maxCSSBytes)
	if err != nil {
		return nil, fmt.Errorf("fetch google fonts css for %s wght@%s: %w", family, weight, err)
	}
	m := fontURLRe.FindSubmatch(css)
	if m == nil {
		return nil, fmt.Errorf("no font URL in google fonts css for %s wght@%s", family, weight)
	}
	fontURL := string(m[1])

	data, err := get(ctx, fontURL, maxFontBytes)
	if err != nil {
		return nil, fmt.Errorf("download font %s: %w", fontURL, err)
	}
	if data, err = ToSFNT(fontURL, data); err != nil {
		return nil, err
	}
	slog.Info("downloaded font", "family", family, "weight", weight, "bytes", len(data))

	if cacheFile != "" {
		if err := atomicfile.WriteAll(cacheFile, data, 0o644); err != nil {
			slog.Warn("failed to cache font", "path", cacheFile, "error", err)
		}
	}
	return data, nil
}

// get performs a GET with retries and returns at most limit bytes of body.
func get(ctx context.Context, rawURL string, limit int64) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := getHTTPClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("response exceeds %d bytes", limit)
	}
	return body, nil
}
