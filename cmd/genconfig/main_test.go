package main

import (
	"reflect"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"tools.zach/dev/letteravatar/internal/config"
)

// ///////////////////////////////////////////////
// parseSectionPath Tests
// ///////////////////////////////////////////////

func TestParseSectionPath(t *testing.T) {
	tests := []struct {
		name    string
		section string
		want    []string
	}{
		{"single segment", "fonts", []string{"fonts"}},
		{"two segments", "fonts.cache", []string{"fonts", "assets"}},
		{"three segments", "fonts.cache.google", []string{"fonts", "cache", "google"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSectionPath(tt.section)
			if len(got) != len(tt.want) {
				t.Fatalf("parseSectionPath(%q) returned %d segments, want %d", tt.section, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseSectionPath(%q)[%d] = %q, want %q", tt.section, i, got[i], tt.want[i])
				}
			}
		})
	}
}

// ///////////////////////////////////////////////
// sectionName Tests
// ///////////////////////////////////////////////

func TestSectionName(t *testing.T) {
	tests := []struct {
		name    string
		section string
		want    string
	}{
		{"single segment", "fonts", "Fonts"},
		{"last of two", "fonts.cache", "Cache"},
		{"last of three", "fonts.cache.google", "Google"},
		{"already capitalized", "Fonts", "Fonts"},
		{"single char", "a", "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sectionName(tt.section)
			if got != tt.want {
				t.Errorf("sectionName(%q) = %q, want %q", tt.section, got, tt.want)
			}
		})
	}
}

func TestSectionNameEmpty(t *testing.T) {
	// A trailing dot produces an empty last segment.
	got := sectionName("")
	if got != "" {
		t.Errorf("sectionName(%q) = %q, want empty string", "", got)
	}
}

// ///////////////////////////////////////////////
// injectOmitted Tests
// ///////////////////////////////////////////////

func TestInjectOmittedNoSection(t *testing.T) {
	// When sectionStack is empty, injectOmitted should be a no-op.
	var out []string
	emitted := map[string]bool{}
	injectOmitted(&out, nil, emitted, config.ConfigDocs, nil)
	if len(out) != 0 {
		t.Errorf("injectOmitted with nil sectionStack produced %d lines, want 0", len(out))
	}
}

func TestInjectOmittedFieldOrder(t *testing.T) {
	docs := map[string]config.FieldDoc{
		"colors.text":       {Alternatives: []string{`text = "#FFF"`}},
		"colors.background": {Alternatives: []string{`background = "#000"`}},
		"colors.rules":      {Alternatives: []string{`[[colors.rules]]`}},
		"colors.zeta":       {Alternatives: []string{`zeta = 1`}},
		"colors.alpha":      {Alternatives: []string{`alpha = 1`}},
	}
	var out []string
	injectOmitted(&out, []string{"colors"}, map[string]bool{}, docs, []string{"text", "background", "rules"})

	var got []string
	for _, l := range out {
		if l != "" {
			got = append(got, l)
		}
	}
	want := []string{
		`# text = "#FFF"`,
		`# background = "#000"`,
		`# [[colors.rules]]`,
		`# alpha = 1`,
		`# zeta = 1`,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("injectOmitted lines = %q, want %q", got, want)
	}
}

// ///////////////////////////////////////////////
// generate Tests
// ///////////////////////////////////////////////

func TestGenerateHeaderAndSections(t *testing.T) {
	out, err := generate(config.ExampleConfig(), config.ConfigDocs)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(out, "# ///////////////////////////////////////////////\n# Letteravatar Configuration\n") {
		t.Errorf("missing header, got %q", out[:min(len(out), 80)])
	}

	last := -1
	for _, section := range []string{"avatar", "fonts", "colors", "output", "log"} {
		idx := strings.Index(out, "\n["+section+"]\n")
		if idx < 0 {
			t.Errorf("section [%s] missing", section)
			continue
		}
		if idx < last {
			t.Errorf("section [%s] out of order", section)
		}
		last = idx
		if !strings.Contains(out, "# ///// "+sectionName(section)+" /////") {
			t.Errorf("separator for %s missing", section)
		}
	}
}

func TestGenerateColorsCommentedOut(t *testing.T) {
	out, err := generate(config.ExampleConfig(), config.ConfigDocs)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	text := strings.Index(out, `# text = "#FFFFFF"`)
	rules := strings.Index(out, "# [[colors.rules]]")
	if text < 0 || rules < 0 {
		t.Fatalf("commented color examples missing:\n%s", out)
	}
	if text > rules {
		t.Error("default pair example should precede the rules example")
	}
}

func TestGenerateDecodesToExample(t *testing.T) {
	out, err := generate(config.ExampleConfig(), config.ConfigDocs)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var got config.Config
	if _, err := toml.Decode(out, &got); err != nil {
		t.Fatalf("generated TOML does not parse: %v\n%s", err, out)
	}
	if want := config.ExampleConfig(); !reflect.DeepEqual(&got, want) {
		t.Errorf("decoded config = %+v, want %+v", got, *want)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("generated config invalid: %v", err)
	}
}
