// Package choropleth implements the indicator-driven color mapping behind the
// world map: it resolves a geographic feature to an institution's metric,
// normalizes the metric against the range of all institutions and turns the
// result into a palette color.
//
// Every function here is pure. Callers recompute derived values (ranges,
// colors, legends) whenever the selected indicator or the loaded datasets
// change; nothing is cached.
package choropleth

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// hexPattern accepts exactly "#rrggbb", case-insensitively.
var hexPattern = regexp.MustCompile(`^#([0-9a-fA-F]{2})([0-9a-fA-F]{2})([0-9a-fA-F]{2})$`)

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// HexToRGB parses a "#rrggbb" string. The second result is false for any
// other form, including shorthand "#rgb" and names.
func HexToRGB(hex string) (RGB, bool) {
	m := hexPattern.FindStringSubmatch(hex)
	if m == nil {
		return RGB{}, false
	}
	var out [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(m[i+1], 16, 8)
		if err != nil {
			return RGB{}, false
		}
		out[i] = uint8(v)
	}
	return RGB{R: out[0], G: out[1], B: out[2]}, true
}

// RGBToHex encodes c as lowercase "#rrggbb".
func RGBToHex(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// IsHex reports whether s is a valid "#rrggbb" color.
func IsHex(s string) bool {
	return hexPattern.MatchString(s)
}

// Darken scales every channel of hex by (1-amount), rounding to the nearest
// integer. amount is clamped to [0,1]. Malformed input is returned unchanged.
func Darken(hex string, amount float64) string {
	c, ok := HexToRGB(hex)
	if !ok {
		return hex
	}
	amount = clamp01(amount)
	f := 1 - amount
	return RGBToHex(RGB{
		R: channel(float64(c.R) * f),
		G: channel(float64(c.G) * f),
		B: channel(float64(c.B) * f),
	})
}

// HoverAmount is the darkening applied to a feature's fill while hovered.
const HoverAmount = 0.25

// HoverColor is the fill of a hovered feature.
func HoverColor(hex string) string {
	return Darken(hex, HoverAmount)
}

// lerpRGB interpolates each channel as round(a + (b-a)*t).
func lerpRGB(a, b RGB, t float64) RGB {
	return RGB{
		R: channel(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: channel(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: channel(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}

// channel rounds half away from zero and saturates to [0,255].
func channel(v float64) uint8 {
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

//Personal.AI order the ending
