package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/CentralBankTalk/internal/app"
	"github.com/turtacn/CentralBankTalk/internal/application/atlas"
	"github.com/turtacn/CentralBankTalk/internal/domain/choropleth"
	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

// parseValue reads a numeric argument. "none", "null" and "-" mean no data.
func parseValue(raw string) (*float64, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "none", "null", "-":
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.New(errors.ErrCodeValidation, "value must be a number or none").WithDetail(raw)
	}
	return &v, nil
}

func newColorCmd() *cobra.Command {
	var (
		min, max float64
		palette  string
		mode     string
		blend    string
	)

	cmd := &cobra.Command{
		Use:   "color <value>",
		Short: "Evaluate the color scale for a value and range",
		Long: "Map a value onto a palette over [min, max]. Pass none for a missing value.\n" +
			"Negative values follow --, e.g. cbtalk color --min -10 -- -5.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseValue(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App, cc *CLIContext) error {
				res, err := a.Service.ScaleColor(atlas.ScaleRequest{
					Value:     value,
					Min:       min,
					Max:       max,
					PaletteID: palette,
					Mode:      mode,
					Blend:     blend,
				})
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				switch cc.OutputFormat {
				case OutputJSON, OutputGeoJSON:
					return printJSON(w, res)
				case OutputText:
					fmt.Fprintln(w, res.Color)
					return nil
				}
				renderKV(w, [][2]string{
					{"Value", formatValue(res.Value)},
					{"Range", formatNumber(res.Range.Min) + " .. " + formatNumber(res.Range.Max)},
					{"Palette", res.Palette},
					{"Mode", string(res.Mode)},
					{"Color", swatch(res.Color, cc.NoColor)},
					{"Hover", swatch(res.HoverColor, cc.NoColor)},
				})
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&min, "min", choropleth.DefaultRange.Min, "range minimum")
	cmd.Flags().Float64Var(&max, "max", choropleth.DefaultRange.Max, "range maximum")
	cmd.Flags().StringVar(&palette, "palette", "", "palette id, or an inline list such as \"#eee,#9ecae1,#08519c\" (default: blues)")
	cmd.Flags().StringVar(&mode, "mode", "", "normalization: linear or sqrt (default: linear)")
	cmd.Flags().StringVar(&blend, "blend", "", "interpolation space: rgb or lab (default: rgb)")
	return cmd
}

func newDarkenCmd() *cobra.Command {
	var amount float64

	cmd := &cobra.Command{
		Use:   "darken <hex>",
		Short: "Darken a #rrggbb color by scaling each channel by (1-amount)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App, cc *CLIContext) error {
				res := a.Service.Darken(args[0], amount)

				w := cmd.OutOrStdout()
				switch cc.OutputFormat {
				case OutputJSON, OutputGeoJSON:
					return printJSON(w, res)
				case OutputText:
					fmt.Fprintln(w, res.Color)
					return nil
				}
				pairs := [][2]string{
					{"Input", swatch(res.Input, cc.NoColor)},
					{"Amount", formatNumber(res.Amount)},
					{"Color", swatch(res.Color, cc.NoColor)},
				}
				if !res.Valid {
					pairs = append(pairs, [2]string{"Note", "input is not #rrggbb; returned unchanged"})
				}
				renderKV(w, pairs)
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", choropleth.HoverAmount, "fraction to darken by, 0..1")
	return cmd
}

//Personal.AI order the ending
