package choropleth

import (
	"fmt"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

// Palette is an ordered list of "#rrggbb" colors. Index 0 is reserved for
// "no data"; indices 1..N-1 form the gradient from low to high.
type Palette []string

// NoData returns the reserved missing-data color.
func (p Palette) NoData() string {
	if len(p) == 0 {
		return ""
	}
	return p[0]
}

// Gradient returns the active gradient entries, palette[1:].
func (p Palette) Gradient() []string {
	if len(p) < 2 {
		return nil
	}
	return p[1:]
}

// Validate checks that p has a no-data slot, at least one gradient entry and
// that every entry is "#rrggbb".
func (p Palette) Validate() error {
	if len(p) < 2 {
		return errors.New(errors.ErrCodeInvalidPalette, "palette needs a no-data color and at least one gradient color")
	}
	for i, c := range p {
		if !IsHex(c) {
			return errors.New(errors.ErrCodeInvalidPalette, "palette entry is not #rrggbb").
				WithDetail(fmt.Sprintf("index %d: %q", i, c))
		}
	}
	return nil
}

// ParsePalette accepts any CSS hex notation ("#abc", "#AABBCC") and returns
// the palette normalized to lowercase "#rrggbb".
func ParsePalette(colors ...string) (Palette, error) {
	out := make(Palette, 0, len(colors))
	for _, raw := range colors {
		c, err := colorful.Hex(strings.TrimSpace(raw))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidColor, "invalid palette color").WithDetail(raw)
		}
		out = append(out, c.Hex())
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Built-in palette identifiers.
const (
	PaletteBlues   = "blues"
	PaletteGreens  = "greens"
	PaletteOranges = "oranges"
)

// noDataGrey is shared by every built-in palette so that missing data looks
// the same whatever indicator is selected.
const noDataGrey = "#d1d5db"

var builtinPalettes = map[string]Palette{
	PaletteBlues:   {noDataGrey, "#b6c7e3", "#7b93c8", "#415a8b", "#243a5e", "#0f172a"},
	PaletteGreens:  {noDataGrey, "#c7e9c0", "#a1d99b", "#74c476", "#31a354", "#006d2c"},
	PaletteOranges: {noDataGrey, "#fdd0a2", "#fdae6b", "#fd8d3c", "#e6550d", "#a63603"},
}

// LookupPalette returns a copy of the built-in palette id.
func LookupPalette(id string) (Palette, error) {
	p, ok := builtinPalettes[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownPalette, "unknown palette").WithDetail(id)
	}
	return append(Palette(nil), p...), nil
}

// ResolvePalette interprets ref as a built-in palette id, or as an inline
// comma-separated color list when it starts with '#'. The returned name is
// the id, or the normalized color list for inline palettes.
func ResolvePalette(ref string) (Palette, string, error) {
	ref = strings.TrimSpace(ref)
	if !strings.HasPrefix(ref, "#") {
		p, err := LookupPalette(ref)
		return p, ref, err
	}
	p, err := ParsePalette(strings.Split(ref, ",")...)
	if err != nil {
		return nil, "", err
	}
	return p, strings.Join(p, ","), nil
}

// PaletteIDs lists the built-in palette identifiers in lexical order.
func PaletteIDs() []string {
	ids := make([]string, 0, len(builtinPalettes))
	for id := range builtinPalettes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ─────────────────────────────────────────────────────────────────────────────
// Blend spaces
// ─────────────────────────────────────────────────────────────────────────────

// BlendSpace selects the color space used between two gradient stops.
type BlendSpace string

const (
	// BlendRGB interpolates 8-bit channels and rounds. This is the canonical
	// rendering used by ColorFor.
	BlendRGB BlendSpace = "rgb"

	// BlendLab interpolates in CIE L*a*b*, which keeps perceived lightness
	// steps even across hue changes.
	BlendLab BlendSpace = "lab"
)

// ParseBlendSpace parses "rgb" or "lab"; the empty string means rgb.
func ParseBlendSpace(s string) (BlendSpace, error) {
	switch BlendSpace(strings.ToLower(s)) {
	case "", BlendRGB:
		return BlendRGB, nil
	case BlendLab:
		return BlendLab, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidMode, "unknown blend space").WithDetail(s)
	}
}

// blend mixes two "#rrggbb" colors at t in the given space. The second result
// is false when either endpoint is malformed.
func blend(a, b string, t float64, space BlendSpace) (string, bool) {
	ca, okA := HexToRGB(a)
	cb, okB := HexToRGB(b)
	if !okA || !okB {
		return "", false
	}
	if space == BlendLab {
		fa := colorful.Color{R: float64(ca.R) / 255, G: float64(ca.G) / 255, B: float64(ca.B) / 255}
		fb := colorful.Color{R: float64(cb.R) / 255, G: float64(cb.G) / 255, B: float64(cb.B) / 255}
		return fa.BlendLab(fb, t).Clamped().Hex(), true
	}
	return RGBToHex(lerpRGB(ca, cb, t)), true
}

//Personal.AI order the ending
