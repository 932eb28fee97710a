package config

// ///////////////////////////////////////////////
// Documentation Types
// ///////////////////////////////////////////////

// FieldDoc holds documentation and alternative examples for a single config field.
// The genconfig tool uses [FieldDoc] values to annotate the generated config.default.toml.
type FieldDoc struct {
	// Comment is shown as a header comment above the field in the example config.
	Comment string

	// Alternatives are shown as commented-out lines below the active value.
	Alternatives []string
}

// ///////////////////////////////////////////////
// Field Documentation Map
// ///////////////////////////////////////////////

// ConfigDocs maps TOML field paths (dot-separated, e.g. "fonts.latin") to
// their [FieldDoc] entries. The genconfig tool uses this map to annotate the
// generated config.default.toml with inline comments and alternative examples.
var ConfigDocs = map[string]FieldDoc{
	// ── Avatar ───────────────────────────────────────────────────
	"avatar": {
		Comment: "Canvas geometry and naming defaults",
	},
	"avatar.width": {
		Comment: "Canvas size in pixels. Font size and padding scale with the shorter side.",
	},
	"avatar.height": {},
	"avatar.default_user_name": {
		Comment: "Used when a name has no letters left after stripping digits, punctuation and symbols.",
	},
	"avatar.initials_len": {
		Comment: "How many characters of the name to draw when no length is given.",
		Alternatives: []string{
			`initials_len = 2`,
		},
	},

	// ── Fonts ────────────────────────────────────────────────────
	"fonts": {
		Comment: "Font specs. Each value is one of:\n  a file path (relative paths resolve against fonts.dir)\n  builtin:NAME          (gomedium, goregular, gobold)\n  google:FAMILY:WEIGHT  (downloaded once, then cached)",
	},
	"fonts.dir": {
		Comment: "Font directory, relative to the data directory unless absolute. Empty means <data-dir>/fonts.",
	},
	"fonts.latin": {
		Comment: "Used when the initials contain an ASCII letter.",
		Alternatives: []string{
			`latin = "google:Roboto:500"`,
		},
	},
	"fonts.latin_fallback": {
		Comment: "Tried when the latin font cannot be loaded.",
	},
	"fonts.cjk": {
		Comment: "Used for all other initials (Chinese, Japanese, Korean, Cyrillic, ...).",
	},
	"fonts.cjk_fallback": {
		Comment: "Tried when the cjk font cannot be loaded.",
		Alternatives: []string{
			`cjk_fallback = "google:Noto Sans JP:500"`,
		},
	},

	// ── Colors ───────────────────────────────────────────────────
	"colors": {
		Comment: "Colors accept \"#RGB\", \"#RRGGBB\" or \"r,g,b\".\nWithout explicit colors each avatar gets a random pair from the built-in palette.",
	},
	"colors.text": {
		Comment: "Default pair. Both text and background must be set.",
		Alternatives: []string{
			`text = "#FFFFFF"`,
		},
	},
	"colors.background": {
		Alternatives: []string{
			`background = "0,10,18"`,
		},
	},
	"colors.rules": {
		Comment: "Per-name colors. Patterns are globs matched against the upper-cased name;\nthe first match wins.",
		Alternatives: []string{
			`[[colors.rules]]`,
			`pattern = "A*"`,
			`text = "#FFF"`,
			`background = "#B71C1C"`,
		},
	},

	// ── Output ───────────────────────────────────────────────────
	"output": {
		Comment: "Written PNG files",
	},
	"output.dir": {
		Comment: "Default output directory when -out is not given.",
	},
	"output.file_mode": {
		Comment: "Octal permission mode of written files.",
		Alternatives: []string{
			`file_mode = "0600"`,
		},
	},

	// ── Log ──────────────────────────────────────────────────────
	"log": {
		Comment: "Logging configuration",
	},
	"log.level": {
		Comment: "Minimum log level. Options: \"trace\", \"debug\", \"info\", \"warn\", \"error\"",
		Alternatives: []string{
			`level = "debug"`,
			`level = "warn"`,
		},
	},
	"log.max_size_mb": {
		Comment: "Maximum log file size in megabytes before rotation.",
	},
}
