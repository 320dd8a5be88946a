package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/CentralBankTalk/internal/app"
)

func newIndicatorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indicators",
		Short: "List the selectable map indicators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App, cc *CLIContext) error {
				items := a.Service.Indicators()
				w := cmd.OutOrStdout()
				switch cc.OutputFormat {
				case OutputJSON, OutputGeoJSON:
					return printJSON(w, items)
				case OutputText:
					for _, ind := range items {
						fmt.Fprintf(w, "%s\t%s\n", ind.Key, ind.Label)
					}
					return nil
				}
				rows := make([][]string, 0, len(items))
				for _, ind := range items {
					rows = append(rows, []string{ind.Key, ind.Label, ind.Unit, ind.PaletteID, string(ind.Mode)})
				}
				renderTable(w, []string{"Key", "Label", "Unit", "Palette", "Mode"}, rows)
				return nil
			})
		},
	}
}

func newPalettesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palettes",
		Short: "List the registered color palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App, cc *CLIContext) error {
				items := a.Service.Palettes()
				w := cmd.OutOrStdout()
				switch cc.OutputFormat {
				case OutputJSON, OutputGeoJSON:
					return printJSON(w, items)
				case OutputText:
					for _, p := range items {
						fmt.Fprintf(w, "%s\t%s\n", p.ID, strings.Join(p.Colors, ","))
					}
					return nil
				}
				rows := make([][]string, 0, len(items))
				for _, p := range items {
					stops := make([]string, 0, len(p.Colors))
					for _, c := range p.Colors {
						stops = append(stops, swatch(c, cc.NoColor))
					}
					rows = append(rows, []string{p.ID, swatch(p.NoDataColor, cc.NoColor), strings.Join(stops, " ")})
				}
				renderTable(w, []string{"ID", "No data", "Colors"}, rows)
				return nil
			})
		},
	}
}

func newMapCmd() *cobra.Command {
	var indicator string

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Color every boundary feature by an indicator",
		Long: "Render the choropleth for one indicator. With -o geojson the boundary\n" +
			"document is printed with fill and fill_hover written onto each feature.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App, cc *CLIContext) error {
				w := cmd.OutOrStdout()
				if cc.OutputFormat == OutputGeoJSON {
					fc, err := a.Service.GeoJSON(ctx, indicator)
					if err != nil {
						return err
					}
					return printJSON(w, fc)
				}

				res, err := a.Service.Render(ctx, indicator)
				if err != nil {
					return err
				}
				switch cc.OutputFormat {
				case OutputJSON:
					return printJSON(w, res)
				case OutputText:
					for _, f := range res.Features {
						fmt.Fprintf(w, "%s\t%s\t%s\n", f.Name, formatValue(f.Value), f.Color)
					}
					return nil
				}

				rows := make([][]string, 0, len(res.Features))
				for _, f := range res.Features {
					rows = append(rows, []string{f.Name, f.ISOA2, f.InstitutionID, formatValue(f.Value), swatch(f.Color, cc.NoColor)})
				}
				renderTable(w, []string{"Feature", "ISO A2", "Institution", res.Indicator.ShortLabel, "Color"}, rows)
				fmt.Fprintf(w, "Range: %s .. %s (%s)\n", formatNumber(res.Range.Min), formatNumber(res.Range.Max), res.Legend.Mode)
				if len(res.Degraded) > 0 {
					fmt.Fprintf(w, "Degraded datasets: %s\n", strings.Join(res.Degraded, ", "))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&indicator, "indicator", "i", "", "indicator key (default: render.default_indicator)")
	return cmd
}

func newFeatureCmd() *cobra.Command {
	var indicator string

	cmd := &cobra.Command{
		Use:   "feature <name>",
		Short: "Resolve one boundary feature to its value, color and detail panel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			return withApp(cmd, func(ctx context.Context, a *app.App, cc *CLIContext) error {
				fv, err := a.Service.FeatureValue(ctx, name, indicator)
				if err != nil {
					return err
				}
				detail, err := a.Service.Detail(ctx, name, indicator)
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				switch cc.OutputFormat {
				case OutputJSON, OutputGeoJSON:
					return printJSON(w, map[string]interface{}{"value": fv, "detail": detail})
				case OutputText:
					printLines(w, fv.Tooltip.Title)
					for _, l := range fv.Tooltip.Lines {
						printLines(w, l)
					}
					if detail.Message != "" {
						printLines(w, detail.Message)
					}
					for _, l := range detail.Lines {
						printLines(w, l)
					}
					if detail.Link != "" {
						printLines(w, detail.Link)
					}
					return nil
				}

				pairs := [][2]string{
					{"Feature", fv.Feature},
					{"Indicator", fv.Indicator},
					{"Code", fv.Code},
					{"Institution", fv.InstitutionID},
					{"Value", formatValue(fv.Value)},
					{"Color", swatch(fv.Color, cc.NoColor)},
					{"Hover", swatch(fv.HoverColor, cc.NoColor)},
				}
				if fv.MissedAt != "" {
					pairs = append(pairs, [2]string{"Missed at", string(fv.MissedAt)})
				}
				if detail.InstitutionName != "" {
					pairs = append(pairs, [2]string{"Name", detail.InstitutionName})
				}
				if detail.Link != "" {
					pairs = append(pairs, [2]string{"Link", detail.Link})
				}
				for _, l := range detail.Lines {
					pairs = append(pairs, [2]string{"Detail", l})
				}
				if detail.Message != "" {
					pairs = append(pairs, [2]string{"Detail", detail.Message})
				}
				renderKV(w, pairs)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&indicator, "indicator", "i", "", "indicator key (default: render.default_indicator)")
	return cmd
}

func newInstitutionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "institution <id>",
		Short: "Show one central bank's speeches per year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withApp(cmd, func(ctx context.Context, a *app.App, cc *CLIContext) error {
				h, err := a.Service.History(ctx, id)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				switch cc.OutputFormat {
				case OutputJSON, OutputGeoJSON:
					return printJSON(w, h)
				case OutputText:
					for _, y := range h.Years {
						fmt.Fprintf(w, "%d\t%d\n", y.Year, y.Speeches)
					}
					return nil
				}
				printLines(w, fmt.Sprintf("%s (%s): %d speeches", h.Name, h.ID, h.Total))
				rows := make([][]string, 0, len(h.Years))
				for _, y := range h.Years {
					rows = append(rows, []string{strconv.Itoa(y.Year), strconv.Itoa(y.Speeches)})
				}
				renderTable(w, []string{"Year", "Speeches"}, rows)
				return nil
			})
		},
	}
}

//Personal.AI order the ending
