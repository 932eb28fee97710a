// Package letteravatar provides embedded assets for the letteravatar CLI.
//
// The root package exists solely to embed [config.default.toml] via
// [DefaultConfigTOML], which the CLI writes to the data directory on first
// run.
package letteravatar

import _ "embed"

// DefaultConfigTOML holds the raw bytes of config.default.toml, embedded at
// build time.
//
//go:embed config.default.toml
var DefaultConfigTOML []byte
