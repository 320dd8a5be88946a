package choropleth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
		ok   bool
	}{
		{"#0f172a", RGB{15, 23, 42}, true},
		{"#D1D5DB", RGB{209, 213, 219}, true},
		{"#fff", RGB{}, false},
		{"0f172a", RGB{}, false},
		{"#0f172a ", RGB{}, false},
		{"#gg0000", RGB{}, false},
		{"", RGB{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := HexToRGB(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRGBToHex_RoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 51 {
				c := RGB{uint8(r), uint8(g), uint8(b)}
				hex := RGBToHex(c)
				back, ok := HexToRGB(hex)
				require.True(t, ok, hex)
				assert.Equal(t, c, back)
			}
		}
	}

	c, ok := HexToRGB("#ABCDEF")
	require.True(t, ok)
	assert.Equal(t, "#abcdef", RGBToHex(c))
}

func TestDarken(t *testing.T) {
	tests := []struct {
		name   string
		hex    string
		amount float64
		want   string
	}{
		{"quarter of white", "#ffffff", 0.25, "#bfbfbf"},
		{"half rounds half up", "#0f172a", 0.25, "#0b1120"},
		{"zero is identity", "#7b93c8", 0, "#7b93c8"},
		{"one is black", "#7b93c8", 1, "#000000"},
		{"amount clamped above", "#7b93c8", 3, "#000000"},
		{"amount clamped below", "#7b93c8", -1, "#7b93c8"},
		{"uppercase input emits lowercase", "#FFFFFF", 0.5, "#808080"},
		{"malformed returned unchanged", "not-a-color", 0.25, "not-a-color"},
		{"shorthand returned unchanged", "#fff", 0.25, "#fff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Darken(tt.hex, tt.amount))
		})
	}
}

func TestHoverColor(t *testing.T) {
	assert.Equal(t, Darken("#415a8b", 0.25), HoverColor("#415a8b"))
}

//Personal.AI order the ending
