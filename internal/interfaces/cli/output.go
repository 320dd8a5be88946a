package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/olekukonko/tablewriter"

	"github.com/turtacn/CentralBankTalk/internal/domain/choropleth"
)

// printJSON outputs data as indented JSON.
func printJSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// renderTable writes headers and rows through tablewriter.
func renderTable(w io.Writer, headers []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
}

// renderKV writes a two-column field/value table.
func renderKV(w io.Writer, pairs [][2]string) {
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{p[0], p[1]})
	}
	renderTable(w, []string{"Field", "Value"}, rows)
}

// swatch renders hex as a truecolor block followed by the hex string. Invalid
// colors and --no-color print the hex alone.
func swatch(hex string, noColor bool) string {
	if noColor {
		return hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	r, g, b := c.RGB255()
	block := color.BgRGB(int(r), int(g), int(b))
	block.EnableColor()
	return block.Sprint("   ") + " " + hex
}

func formatValue(v choropleth.Value) string {
	if !v.OK {
		return "no data"
	}
	return strconv.FormatFloat(v.N, 'f', -1, 64)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func printLines(w io.Writer, lines ...string) {
	fmt.Fprintln(w, strings.Join(lines, "\n"))
}

//Personal.AI order the ending
