package choropleth

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Value
// ─────────────────────────────────────────────────────────────────────────────

// Value is an optional number. The zero Value is "no data".
type Value struct {
	N  float64
	OK bool
}

// Some wraps a finite number. NaN and infinities are treated as no data.
func Some(n float64) Value {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return Value{}
	}
	return Value{N: n, OK: true}
}

// NoData is the absent value.
func NoData() Value { return Value{} }

// FromPtr converts an optional field to a Value.
func FromPtr(p *float64) Value {
	if p == nil {
		return NoData()
	}
	return Some(*p)
}

// Ptr returns nil for no data, which encodes as JSON null.
func (v Value) Ptr() *float64 {
	if !v.OK {
		return nil
	}
	n := v.N
	return &n
}

// MarshalJSON encodes no data as null.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Ptr())
}

// UnmarshalJSON accepts a number or null.
func (v *Value) UnmarshalJSON(b []byte) error {
	var p *float64
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*v = FromPtr(p)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Normalization
// ─────────────────────────────────────────────────────────────────────────────

// Mode selects how a value is mapped onto [0,1].
type Mode string

const (
	// ModeLinear maps (v-min)/(max-min) directly.
	ModeLinear Mode = "linear"

	// ModeSqrt applies a power law with exponent 0.5, spreading the low end
	// of right-skewed indicators such as speech counts.
	ModeSqrt Mode = "sqrt"
)

// ParseMode parses "linear" or "sqrt" ("power" is accepted for sqrt).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ModeLinear):
		return ModeLinear, nil
	case string(ModeSqrt), "power":
		return ModeSqrt, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidMode, "normalization mode must be linear or sqrt").WithDetail(s)
	}
}

// Range is the [Min, Max] span of an indicator across all institutions.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultRange is used when no institution yields a numeric value.
var DefaultRange = Range{Min: 0, Max: 1}

// Span returns Max-Min, or 1 when the range is degenerate.
func (r Range) Span() float64 {
	if s := r.Max - r.Min; s != 0 {
		return s
	}
	return 1
}

// ComputeRange scans every institution, applies the indicator's accessor and
// tracks the minimum and maximum of the numeric results. When nothing is
// numeric it returns DefaultRange.
func ComputeRange(ind IndicatorDescriptor, institutions map[string]Institution) Range {
	found := false
	r := Range{}
	for _, inst := range institutions {
		v := ind.Value(inst)
		if !v.OK {
			continue
		}
		if !found {
			r = Range{Min: v.N, Max: v.N}
			found = true
			continue
		}
		if v.N < r.Min {
			r.Min = v.N
		}
		if v.N > r.Max {
			r.Max = v.N
		}
	}
	if !found {
		return DefaultRange
	}
	return r
}

// Normalize maps n onto [0,1] for the given range and mode. Values outside
// the range are clamped; a value at Min yields 0 and at Max yields 1 in every
// mode.
func Normalize(n float64, r Range, mode Mode) float64 {
	t := (n - r.Min) / r.Span()
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if mode == ModeSqrt {
		t = math.Sqrt(t)
	}
	return clamp01(t)
}

// ─────────────────────────────────────────────────────────────────────────────
// Color mapping
// ─────────────────────────────────────────────────────────────────────────────

// ColorFor maps v onto palette.
//
// No data returns palette[0]. Otherwise the normalized fraction t is placed at
// position t*(N-2)+1 among the gradient entries. An integral position returns
// that entry verbatim; anything else interpolates the RGB channels of the two
// neighbouring entries. A palette with a single gradient entry always returns
// it. An empty palette returns "".
func ColorFor(v Value, r Range, palette Palette, mode Mode) string {
	return colorAt(v, r, palette, mode, BlendRGB)
}

// Scale bundles the inputs of ColorFor that stay fixed while one indicator
// is displayed.
type Scale struct {
	Range   Range
	Palette Palette
	Mode    Mode
	Blend   BlendSpace
}

// NewScale computes the range of ind over institutions and resolves its
// palette.
func NewScale(ind IndicatorDescriptor, institutions map[string]Institution) (Scale, error) {
	p, err := LookupPalette(ind.PaletteID)
	if err != nil {
		return Scale{}, err
	}
	return Scale{
		Range:   ComputeRange(ind, institutions),
		Palette: p,
		Mode:    ind.Mode,
		Blend:   BlendRGB,
	}, nil
}

// Color maps v onto the scale.
func (s Scale) Color(v Value) string {
	return colorAt(v, s.Range, s.Palette, s.Mode, s.Blend)
}

func colorAt(v Value, r Range, palette Palette, mode Mode, space BlendSpace) string {
	n := len(palette)
	if n == 0 {
		return ""
	}
	if !v.OK || n == 1 {
		return palette[0]
	}
	if n == 2 {
		return palette[1]
	}

	t := Normalize(v.N, r, mode)
	pos := t*float64(n-2) + 1
	lo, hi := math.Floor(pos), math.Ceil(pos)
	if lo == hi {
		return palette[int(lo)]
	}
	c, ok := blend(palette[int(lo)], palette[int(hi)], pos-lo, space)
	if !ok {
		return palette[int(lo)]
	}
	return c
}

//Personal.AI order the ending
