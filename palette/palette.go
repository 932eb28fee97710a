// Package palette holds the avatar color model: RGB triples, text/background
// pairs, the fixed light/dark palette used for random coloring, and parsing of
// the "#RGB", "#RRGGBB" and "r,g,b" color notations.
package palette

import (
	"image/color"
	"math/rand/v2"
)

// ///////////////////////////////////////////////
// Types
// ///////////////////////////////////////////////

// RGB is an opaque 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// NRGBA converts c to a fully opaque [color.NRGBA] for drawing.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// Pair is the text and background color of one avatar.
type Pair struct {
	Text       RGB
	Background RGB
}

// Entry is one palette row: a light shade and the matching dark shade.
type Entry struct {
	Light RGB
	Dark  RGB
}

// Source is the random source used for palette draws. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// ///////////////////////////////////////////////
// Palette Data
// ///////////////////////////////////////////////

// Palette is the fixed table of (light, dark) pairs. It must not be modified.
var Palette = []Entry{
	{RGB{229, 115, 115}, RGB{183, 28, 28}}, {RGB{211, 47, 47}, RGB{127, 0, 0}}, {RGB{244, 67, 54}, RGB{127, 0, 0}}, {RGB{229, 57, 53}, RGB{127, 0, 0}},
	{RGB{240, 98, 146}, RGB{136, 14, 79}}, {RGB{194, 24, 91}, RGB{86, 0, 39}}, {RGB{197, 17, 98}, RGB{86, 0, 39}}, {RGB{188, 71, 123}, RGB{86, 0, 39}},
	{RGB{186, 104, 200}, RGB{74, 20, 140}}, {RGB{123, 31, 162}, RGB{18, 0, 94}}, {RGB{156, 39, 176}, RGB{18, 0, 94}}, {RGB{124, 67, 189}, RGB{18, 0, 94}},
	{RGB{149, 117, 205}, RGB{49, 27, 146}}, {RGB{81, 45, 168}, RGB{0, 0, 99}}, {RGB{103, 58, 183}, RGB{0, 0, 99}}, {RGB{103, 70, 195}, RGB{0, 0, 99}},
	{RGB{121, 134, 203}, RGB{26, 35, 126}}, {RGB{63, 81, 181}, RGB{0, 0, 81}}, {RGB{48, 63, 159}, RGB{0, 0, 81}}, {RGB{83, 75, 174}, RGB{0, 0, 81}},
	{RGB{100, 181, 246}, RGB{13, 71, 161}}, {RGB{33, 150, 243}, RGB{0, 33, 113}}, {RGB{25, 118, 210}, RGB{0, 33, 113}}, {RGB{84, 114, 211}, RGB{0, 33, 113}},
	{RGB{79, 195, 247}, RGB{1, 87, 155}}, {RGB{3, 169, 244}, RGB{1, 87, 155}}, {RGB{2, 136, 209}, RGB{0, 47, 108}}, {RGB{79, 131, 204}, RGB{0, 47, 108}},
	{RGB{77, 208, 225}, RGB{0, 96, 100}}, {RGB{0, 188, 212}, RGB{0, 96, 100}}, {RGB{0, 151, 167}, RGB{0, 54, 58}}, {RGB{66, 142, 146}, RGB{0, 54, 58}},
	{RGB{77, 182, 172}, RGB{0, 77, 64}}, {RGB{0, 150, 136}, RGB{0, 37, 26}}, {RGB{0, 121, 107}, RGB{0, 37, 26}}, {RGB{57, 121, 107}, RGB{0, 37, 26}},
	{RGB{129, 199, 132}, RGB{27, 94, 32}}, {RGB{76, 175, 80}, RGB{27, 94, 32}}, {RGB{56, 142, 60}, RGB{0, 51, 0}}, {RGB{76, 140, 74}, RGB{0, 51, 0}},
	{RGB{174, 213, 129}, RGB{51, 105, 30}}, {RGB{139, 195, 74}, RGB{51, 105, 30}}, {RGB{104, 159, 56}, RGB{0, 61, 0}}, {RGB{98, 151, 73}, RGB{0, 61, 0}},
	{RGB{220, 231, 117}, RGB{130, 119, 23}}, {RGB{205, 220, 57}, RGB{82, 76, 0}}, {RGB{175, 180, 43}, RGB{82, 76, 0}}, {RGB{180, 166, 71}, RGB{82, 76, 0}},
	{RGB{255, 241, 118}, RGB{245, 127, 23}}, {RGB{255, 235, 59}, RGB{245, 127, 23}}, {RGB{251, 192, 45}, RGB{188, 81, 0}}, {RGB{255, 176, 76}, RGB{188, 81, 0}},
	{RGB{255, 213, 79}, RGB{255, 111, 0}}, {RGB{255, 193, 7}, RGB{196, 62, 0}}, {RGB{255, 160, 0}, RGB{196, 62, 0}}, {RGB{255, 160, 64}, RGB{196, 62, 0}},
	{RGB{255, 183, 77}, RGB{230, 81, 0}}, {RGB{255, 152, 0}, RGB{172, 25, 0}}, {RGB{245, 124, 0}, RGB{172, 25, 0}}, {RGB{255, 131, 58}, RGB{172, 25, 0}},
	{RGB{255, 138, 101}, RGB{191, 54, 12}}, {RGB{255, 87, 34}, RGB{135, 0, 0}}, {RGB{249, 104, 58}, RGB{135, 0, 0}},
	{RGB{161, 136, 127}, RGB{62, 39, 35}}, {RGB{121, 85, 72}, RGB{27, 0, 0}}, {RGB{106, 79, 75}, RGB{27, 0, 0}},
	{RGB{144, 164, 174}, RGB{38, 50, 56}}, {RGB{96, 125, 139}, RGB{0, 10, 18}}, {RGB{79, 91, 98}, RGB{0, 10, 18}},
}

// ///////////////////////////////////////////////
// Random Selection
// ///////////////////////////////////////////////

// globalSource adapts the math/rand/v2 top-level functions to [Source].
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Random draws one palette entry uniformly from src and assigns it to a
// [Pair]: with probability 1/2 the light shade is the text color and the dark
// shade the background, otherwise the other way around. A nil src uses the
// process-wide generator.
func Random(src Source) Pair {
	if src == nil {
		src = globalSource{}
	}
	e := Palette[src.IntN(len(Palette))]
	if src.IntN(2) == 0 {
		return Pair{Text: e.Light, Background: e.Dark}
	}
	return Pair{Text: e.Dark, Background: e.Light}
}

// Contains reports whether p is one of the two orientations of a palette entry.
func Contains(p Pair) bool {
	for _, e := range Palette {
		if (p.Text == e.Light && p.Background == e.Dark) || (p.Text == e.Dark && p.Background == e.Light) {
			return true
		}
	}
	return false
}
