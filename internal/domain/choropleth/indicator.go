package choropleth

import (
	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

// Indicator keys. The set is fixed; clients select from it.
const (
	IndicatorSpeeches                = "speeches"
	IndicatorSpeakers                = "speakers"
	IndicatorAudienceAcademic        = "audience_academic"
	IndicatorAudienceCentralBank     = "audience_central_bank"
	IndicatorAudienceFinancialMarket = "audience_financial_market"
	IndicatorAudiencePolitical       = "audience_political"
	IndicatorPressureMonetary        = "pressure_monetary"
	IndicatorPressureFiscal          = "pressure_fiscal"
	IndicatorPressureFinancial       = "pressure_financial"

	DefaultIndicatorKey = IndicatorSpeeches
)

// Accessor extracts an indicator's value from an institution record.
type Accessor func(Institution) Value

// IndicatorDescriptor configures one selectable map indicator.
type IndicatorDescriptor struct {
	Key        string   `json:"key"`
	Label      string   `json:"label"`
	ShortLabel string   `json:"short_label"`
	Unit       string   `json:"unit,omitempty"`
	PaletteID  string   `json:"palette"`
	Mode       Mode     `json:"mode"`
	Accessor   Accessor `json:"-"`
}

// Value applies the accessor. A descriptor without one yields no data.
func (d IndicatorDescriptor) Value(inst Institution) Value {
	if d.Accessor == nil {
		return NoData()
	}
	return d.Accessor(inst)
}

func audienceShare(category string) Accessor {
	return func(i Institution) Value { return i.Audiences.Share(category) }
}

func percent(field func(PolicyPressures) *float64) Accessor {
	return func(i Institution) Value {
		v := FromPtr(field(i.Pressures))
		if !v.OK {
			return v
		}
		return Some(v.N * 100)
	}
}

// Counts are right-skewed across institutions and use sqrt; shares are
// bounded percentages and use linear.
var catalog = []IndicatorDescriptor{
	{
		Key: IndicatorSpeeches, Label: "Number of speeches", ShortLabel: "Speeches",
		PaletteID: PaletteBlues, Mode: ModeSqrt,
		Accessor: func(i Institution) Value { return FromPtr(i.Speeches) },
	},
	{
		Key: IndicatorSpeakers, Label: "Number of speakers", ShortLabel: "Speakers",
		PaletteID: PaletteBlues, Mode: ModeSqrt,
		Accessor: func(i Institution) Value { return FromPtr(i.Speakers) },
	},
	{
		Key: IndicatorAudienceAcademic, Label: "Academic audience (%)", ShortLabel: "Academic audience", Unit: "%",
		PaletteID: PaletteGreens, Mode: ModeLinear, Accessor: audienceShare(AudienceAcademic),
	},
	{
		Key: IndicatorAudienceCentralBank, Label: "Central bank audience (%)", ShortLabel: "Central bank audience", Unit: "%",
		PaletteID: PaletteGreens, Mode: ModeLinear, Accessor: audienceShare(AudienceCentralBank),
	},
	{
		Key: IndicatorAudienceFinancialMarket, Label: "Financial market audience (%)", ShortLabel: "Financial market audience", Unit: "%",
		PaletteID: PaletteGreens, Mode: ModeLinear, Accessor: audienceShare(AudienceFinancialMarket),
	},
	{
		Key: IndicatorAudiencePolitical, Label: "Political audience (%)", ShortLabel: "Political audience", Unit: "%",
		PaletteID: PaletteGreens, Mode: ModeLinear, Accessor: audienceShare(AudiencePolitical),
	},
	{
		Key: IndicatorPressureMonetary, Label: "Monetary pressure (%)", ShortLabel: "Monetary pressure", Unit: "%",
		PaletteID: PaletteOranges, Mode: ModeLinear,
		Accessor: percent(func(p PolicyPressures) *float64 { return p.Monetary }),
	},
	{
		Key: IndicatorPressureFiscal, Label: "Fiscal pressure (%)", ShortLabel: "Fiscal pressure", Unit: "%",
		PaletteID: PaletteOranges, Mode: ModeLinear,
		Accessor: percent(func(p PolicyPressures) *float64 { return p.Fiscal }),
	},
	{
		Key: IndicatorPressureFinancial, Label: "Financial pressure (%)", ShortLabel: "Financial pressure", Unit: "%",
		PaletteID: PaletteOranges, Mode: ModeLinear,
		Accessor: percent(func(p PolicyPressures) *float64 { return p.Financial }),
	},
}

// Indicators returns the catalog in display order.
func Indicators() []IndicatorDescriptor {
	return append([]IndicatorDescriptor(nil), catalog...)
}

// LookupIndicator returns the descriptor registered under key.
func LookupIndicator(key string) (IndicatorDescriptor, error) {
	for _, d := range catalog {
		if d.Key == key {
			return d, nil
		}
	}
	return IndicatorDescriptor{}, errors.New(errors.ErrCodeUnknownIndicator, "unknown indicator").WithDetail(key)
}

//Personal.AI order the ending
