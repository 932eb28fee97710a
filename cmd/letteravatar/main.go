// Package main implements the letteravatar CLI, which renders initials
// avatars as PNG files: one at a time, from a batch file, or continuously
// while watching a batch file for changes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	rootpkg "tools.zach/dev/letteravatar"
	"tools.zach/dev/letteravatar/internal/config"
	"tools.zach/dev/letteravatar/internal/logger"
	"tools.zach/dev/letteravatar/internal/paths"
	"tools.zach/dev/letteravatar/internal/watch"
)

// ///////////////////////////////////////////////
// Version
// ///////////////////////////////////////////////

// version is set at build time via -ldflags "-X main.version=0.1.0".
//
// When ldflags are not set (bare go build), resolveVersion reads the VCS info
// that Go embeds automatically.
var version = "dev"

// resolveVersion returns the build version string. If [version] was set via
// ldflags it is returned as-is; otherwise the embedded VCS revision and dirty
// state produce a "dev+<hash>" tag.
func resolveVersion() string {
	if version != "dev" {
		return version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}
	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return version
	}
	hash := revision[:min(7, len(revision))]
	if dirty {
		return "dev+" + hash + ".dirty"
	}
	return "dev+" + hash
}

// ///////////////////////////////////////////////
// Default Data Directory
// ///////////////////////////////////////////////

// defaultDataDir returns ~/.letteravatar, or ./.letteravatar when the home
// directory cannot be determined.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", paths.DataDirRel)
	}
	return filepath.Join(home, paths.DataDirRel)
}

// ///////////////////////////////////////////////
// Flags
// ///////////////////////////////////////////////

// options holds the parsed command line.
type options struct {
	dataDir     string
	configPath  string
	logStderr   bool
	name        string
	n           int
	text        string
	background  string
	out         string
	batch       string
	outDir      string
	watch       bool
	showVersion bool
}

// parseFlags parses args (without the program name). Usage and parse errors
// are written to stderr.
func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet(paths.BinaryName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.dataDir, "data-dir", defaultDataDir(), "Data directory for config, fonts, font cache and logs")
	fs.StringVar(&o.configPath, "config", "", "Config file (default <data-dir>/config.toml)")
	fs.BoolVar(&o.logStderr, "log-stderr", false, "Log to stderr instead of the log file")
	fs.StringVar(&o.name, "name", "", "Display name to draw initials from")
	fs.IntVar(&o.n, "len", 0, "Number of initials (default [avatar] initials_len)")
	fs.StringVar(&o.text, "text", "", `Text color ("#RGB", "#RRGGBB" or "r,g,b")`)
	fs.StringVar(&o.background, "bg", "", "Background color")
	fs.StringVar(&o.out, "out", "", `Output PNG file, "-" for stdout (default <output.dir>/avatar.png)`)
	fs.StringVar(&o.batch, "batch", "", "Batch file with one name[|len[|text|background]] per line")
	fs.StringVar(&o.outDir, "out-dir", "", "Output directory for batch mode (default [output] dir)")
	fs.BoolVar(&o.watch, "watch", false, "Re-run the batch whenever the batch file changes")
	fs.BoolVar(&o.showVersion, "version", false, "Print the version and exit")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if o.n < 0 {
		return o, fmt.Errorf("-len must be >= 0, got %d", o.n)
	}
	if o.watch && o.batch == "" {
		return o, errors.New("-watch requires -batch")
	}
	if o.batch != "" && o.out != "" {
		return o, errors.New("-out cannot be combined with -batch; use -out-dir")
	}
	return o, nil
}

// ///////////////////////////////////////////////
// Main
// ///////////////////////////////////////////////

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(2)
	}
	if opts.showVersion {
		fmt.Println(resolveVersion())
		return
	}
	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// run sets up the data directory, config and logging, then dispatches to
// single, batch or watch mode.
func run(ctx context.Context, opts options) error {
	dp := DataPaths{Root: opts.dataDir}
	if err := os.MkdirAll(dp.Root, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	var (
		cfg        *config.Config
		err        error
		configPath = opts.configPath
	)
	if configPath == "" {
		configPath = dp.Config()
		if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
			if writeErr := os.WriteFile(configPath, rootpkg.DefaultConfigTOML, 0o644); writeErr != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to write default config: %v\n", writeErr)
			}
		}
		cfg, err = config.Load(dp.Root)
	} else {
		cfg, err = config.LoadFile(configPath)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logLevel := logger.ParseLevel(cfg.Log.Level)
	if opts.logStderr {
		slog.SetDefault(logger.NewConsoleLogger(os.Stderr, logLevel))
	} else {
		log, logCloser, err := logger.NewLogger(dp.Log(), logLevel, cfg.Log.MaxSizeMB)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer logCloser.Close()
		slog.SetDefault(log)
	}
	slog.Info("letteravatar starting", "version", resolveVersion(), "data_dir", dp.Root, "config", configPath)

	if err := dispatch(ctx, newApp(cfg, dp), cfg, opts); err != nil {
		logger.Fail(slog.Default(), "letteravatar failed", "error", err)
		return err
	}
	return nil
}

// dispatch runs single, batch or watch mode as selected by opts.
func dispatch(ctx context.Context, a *app, cfg *config.Config, opts options) error {
	switch {
	case opts.batch == "":
		out := opts.out
		if out == "" {
			out = filepath.Join(cfg.Output.Dir, paths.DefaultOut)
		}
		return a.generate(ctx, job{
			Name:       opts.name,
			Len:        opts.n,
			Text:       opts.text,
			Background: opts.background,
			Out:        out,
		})

	case !opts.watch:
		_, err := a.runBatch(ctx, opts.batch, batchOutDir(cfg, opts))
		return err

	default:
		return runWatch(ctx, a, opts.batch, batchOutDir(cfg, opts))
	}
}

// batchOutDir returns -out-dir, or [output] dir when the flag is empty.
func batchOutDir(cfg *config.Config, opts options) string {
	if opts.outDir != "" {
		return opts.outDir
	}
	return cfg.Output.Dir
}

// ///////////////////////////////////////////////
// Watch Mode
// ///////////////////////////////////////////////

// runWatch locks outDir, then regenerates the batch each time the batch file
// changes until SIGINT or SIGTERM.
func runWatch(ctx context.Context, a *app, batchPath, outDir string) error {
	lock, err := acquireLock(outDir)
	if err != nil {
		return err
	}
	defer releaseLock(lock)

	w, err := watch.New(batchPath)
	if err != nil {
		return fmt.Errorf("watch %s: %w", batchPath, err)
	}
	defer w.Close()
	if w.Polling() {
		slog.Info("using polling mode for file watching")
	}

	return watchLoop(ctx, a, batchPath, outDir, w.Events(), signalChannel())
}

// watchLoop runs the batch once, then again on every event, until stop
// fires or ctx is done. Batch errors are logged and do not end the loop.
func watchLoop(ctx context.Context, a *app, batchPath, outDir string, events <-chan struct{}, stop <-chan os.Signal) error {
	regenerate := func() {
		if _, err := a.runBatch(ctx, batchPath, outDir); err != nil {
			slog.Error("batch failed", "path", batchPath, "error", err)
		}
	}

	regenerate()
	for {
		select {
		case <-stop:
			slog.Info("received shutdown signal")
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-events:
			slog.Info("batch file changed", "path", batchPath)
			regenerate()
		}
	}
}

// acquireLock creates outDir if needed and takes the exclusive watch lock
// inside it. The returned file must be passed to [releaseLock].
func acquireLock(outDir string) (*os.File, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	path := paths.LockIn(outDir)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := lockFile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("another letteravatar is watching %s: %w", outDir, err)
	}
	return f, nil
}

// releaseLock unlocks, closes and removes the lock file.
func releaseLock(f *os.File) {
	if f == nil {
		return
	}
	_ = unlockFile(f)
	f.Close()
	os.Remove(f.Name())
}
