package choropleth

import (
	"math"
	"strconv"
)

// GradientStop is one stop of the legend's linear gradient. Offset is a
// percentage in [0,100].
type GradientStop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// Tick is a labelled legend position. Position is where Value falls on the
// gradient, in [0,1], under the legend's mode.
type Tick struct {
	Value    float64 `json:"value"`
	Label    string  `json:"label"`
	Position float64 `json:"position"`
}

// Legend describes the color key shown beside the map.
type Legend struct {
	NoDataColor string         `json:"no_data_color"`
	Stops       []GradientStop `json:"stops"`
	Ticks       []Tick         `json:"ticks"`
	Mode        Mode           `json:"mode"`
}

// BuildLegend lays out palette[1:] as evenly spaced gradient stops and labels
// the minimum, the rounded midpoint and the maximum of the range.
func BuildLegend(r Range, palette Palette, mode Mode) Legend {
	lg := Legend{NoDataColor: palette.NoData(), Mode: mode}

	grad := palette.Gradient()
	switch len(grad) {
	case 0:
	case 1:
		lg.Stops = []GradientStop{{Offset: 0, Color: grad[0]}, {Offset: 100, Color: grad[0]}}
	default:
		last := float64(len(grad) - 1)
		for i, c := range grad {
			lg.Stops = append(lg.Stops, GradientStop{Offset: float64(i) / last * 100, Color: c})
		}
	}

	mid := math.Round((r.Min + r.Max) / 2)
	for _, v := range []float64{r.Min, mid, r.Max} {
		lg.Ticks = append(lg.Ticks, Tick{Value: v, Label: FormatNumber(v), Position: Normalize(v, r, mode)})
	}
	return lg
}

// FormatNumber renders v with at most two decimals and no trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

//Personal.AI order the ending
