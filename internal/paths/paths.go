// Package paths centralizes file and directory names used across the project.
// All data directory file names are defined here as the single source of truth.
package paths

import "path/filepath"

// ///////////////////////////////////////////////
// Constants
// ///////////////////////////////////////////////

// Data directory file names.
const (
	ConfigFile   = "config.toml"
	LogFile      = "letteravatar.log"
	FontsDir     = "fonts"
	FontCacheDir = "font-cache"
)

// Binary and per-directory names.
const (
	BinaryName  = "letteravatar"
	DataDirRel  = ".letteravatar" // relative to $HOME
	LockFile    = ".letteravatar.lock"
	DefaultOut  = "avatar.png"
	BatchOutExt = ".png"
)

// ///////////////////////////////////////////////
// DataDir
// ///////////////////////////////////////////////

// DataDir provides path construction methods rooted at a data directory.
type DataDir struct {
	Root string
}

// Config returns the full path to the config file.
func (d DataDir) Config() string { return filepath.Join(d.Root, ConfigFile) }

// Log returns the full path to the log file.
func (d DataDir) Log() string { return filepath.Join(d.Root, LogFile) }

// Fonts returns the full path to the default font directory.
func (d DataDir) Fonts() string { return filepath.Join(d.Root, FontsDir) }

// FontCache returns the full path to the downloaded font cache.
func (d DataDir) FontCache() string { return filepath.Join(d.Root, FontCacheDir) }

// LockIn returns the path of the watch-mode lock file inside an output
// directory.
func LockIn(outDir string) string { return filepath.Join(outDir, LockFile) }
