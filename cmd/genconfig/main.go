// Package main implements the genconfig tool that writes config.default.toml
// from config.ExampleConfig().
//
// It is invoked by go generate via the directive in internal/config/config.go.
package main

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"tools.zach/dev/letteravatar/internal/config"
)

func main() {
	result, err := generate(config.ExampleConfig(), config.ConfigDocs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal: %v\n", err)
		os.Exit(1)
	}

	// go generate runs from the package directory (internal/config/).
	// With go.mod at root, ../../ reaches the repo root where configdata.go
	// embeds config.default.toml.
	outPath := "../../config.default.toml"
	if err := os.WriteFile(outPath, []byte(result), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("wrote config.default.toml\n")
}

// generate encodes cfg as TOML and annotates it with docs. Documented
// top-level sections the encoder skipped (all fields empty) are still written
// so every option appears in the output.
func generate(cfg *config.Config, docs map[string]config.FieldDoc) (string, error) {
	var raw bytes.Buffer
	enc := toml.NewEncoder(&raw)
	if err := enc.Encode(cfg); err != nil {
		return "", err
	}

	// Encoded sections keyed by name, in encoder order.
	var order []string
	bodies := map[string][]string{}
	var current string
	for _, line := range strings.Split(raw.String(), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "[[") {
			current = strings.Trim(trimmed, "[] ")
			order = append(order, current)
			bodies[current] = nil
			continue
		}
		bodies[current] = append(bodies[current], trimmed)
	}

	out := []string{
		"# ///////////////////////////////////////////////",
		"# Letteravatar Configuration",
		"# ///////////////////////////////////////////////",
	}
	emitted := map[string]bool{}

	for _, section := range sectionOrder(cfg, order, docs) {
		stack := parseSectionPath(section)
		out = append(out, "", fmt.Sprintf("# ///// %s /////", sectionName(section)), "")
		appendComment(&out, docs[section].Comment)
		out = append(out, "["+section+"]")

		for _, line := range bodies[section] {
			// Non key=value lines pass through unchanged.
			if !strings.Contains(line, "=") || strings.HasPrefix(line, "#") {
				out = append(out, line)
				continue
			}
			key := strings.TrimSpace(strings.SplitN(line, "=", 2)[0])
			fullPath := strings.Join(stack, ".") + "." + key
			emitted[fullPath] = true

			doc := docs[fullPath]
			appendComment(&out, doc.Comment)
			out = append(out, line)
			for _, alt := range doc.Alternatives {
				out = append(out, "# "+alt)
			}
		}
		injectOmitted(&out, stack, emitted, docs, fieldOrder(cfg, section))
	}

	result := strings.Join(out, "\n")
	return strings.TrimRight(result, "\n") + "\n", nil
}

// sectionOrder returns the top-level sections to write, in struct field
// order: those the encoder produced plus documented ones it skipped.
func sectionOrder(cfg *config.Config, encoded []string, docs map[string]config.FieldDoc) []string {
	var all []string
	for _, name := range structTags(reflect.TypeOf(*cfg)) {
		_, documented := docs[name]
		if documented || slices.Contains(encoded, name) {
			all = append(all, name)
		}
	}
	for _, s := range encoded {
		if !slices.Contains(all, s) {
			all = append(all, s)
		}
	}
	return all
}

// fieldOrder returns the TOML keys of the struct behind a top-level section,
// in declaration order. It returns nil for unknown sections.
func fieldOrder(cfg *config.Config, section string) []string {
	t := reflect.TypeOf(*cfg)
	for i := range t.NumField() {
		f := t.Field(i)
		if tagName(f) == section && f.Type.Kind() == reflect.Struct {
			return structTags(f.Type)
		}
	}
	return nil
}

// structTags lists the toml tag names of t's fields in declaration order.
func structTags(t reflect.Type) []string {
	var names []string
	for i := range t.NumField() {
		if name := tagName(t.Field(i)); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// tagName returns the key portion of a field's toml tag.
func tagName(f reflect.StructField) string {
	tag := f.Tag.Get("toml")
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

// appendComment writes each line of comment prefixed with "# ".
func appendComment(out *[]string, comment string) {
	if comment == "" {
		return
	}
	for _, cl := range strings.Split(comment, "\n") {
		*out = append(*out, "# "+cl)
	}
}

// injectOmitted appends commented-out entries for docs keys that belong to
// the current section but were not emitted by the TOML encoder (typically
// because the field has an omitempty tag and holds its zero value). Keys
// listed in order come first in that order; the rest follow sorted.
func injectOmitted(out *[]string, sectionStack []string, emitted map[string]bool, docs map[string]config.FieldDoc, order []string) {
	if len(sectionStack) == 0 {
		return
	}
	prefix := strings.Join(sectionStack, ".") + "."

	var omitted []string
	for _, key := range order {
		path := prefix + key
		if _, ok := docs[path]; ok && !emitted[path] {
			omitted = append(omitted, path)
		}
	}
	var rest []string
	for path := range docs {
		if !strings.HasPrefix(path, prefix) || strings.Contains(strings.TrimPrefix(path, prefix), ".") {
			continue
		}
		if emitted[path] || slices.Contains(omitted, path) {
			continue
		}
		rest = append(rest, path)
	}
	slices.Sort(rest)
	omitted = append(omitted, rest...)

	for _, path := range omitted {
		doc := docs[path]
		*out = append(*out, "")
		appendComment(out, doc.Comment)
		for _, alt := range doc.Alternatives {
			*out = append(*out, "# "+alt)
		}
		emitted[path] = true
	}
}

// parseSectionPath splits a dotted TOML section header (e.g. "fonts.cache")
// into its component path segments (["fonts", "cache"]).
func parseSectionPath(section string) []string {
	return strings.Split(section, ".")
}

// sectionName returns a human-readable display name for a TOML section header
// by extracting the last dotted segment and capitalizing its first letter.
// For example, "fonts.cache" yields "Cache".
func sectionName(section string) string {
	parts := strings.Split(section, ".")
	last := parts[len(parts)-1]
	if len(last) == 0 {
		return ""
	}
	return strings.ToUpper(last[:1]) + last[1:]
}
