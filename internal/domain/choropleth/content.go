package choropleth

import (
	"net/url"
	"strings"
)

// DataPagePath is the per-institution page linked from the detail panel.
const DataPagePath = "/data-page"

// Messages shown when a feature has no usable data.
const (
	MsgNoSpeechData = "No speech data"
	MsgNoData       = "No data"
)

// Tooltip is the transient content shown while a feature is hovered.
type Tooltip struct {
	Title string   `json:"title"`
	Lines []string `json:"lines,omitempty"`
}

// BuildTooltip titles the tooltip with the feature name and adds the
// indicator line only when v is present.
func BuildTooltip(featureName string, v Value, ind IndicatorDescriptor) Tooltip {
	t := Tooltip{Title: featureName}
	if v.OK {
		t.Lines = append(t.Lines, IndicatorLine(ind, v.N))
	}
	return t
}

// IndicatorLine renders "Speeches: 120" or "Monetary pressure: 12.5%".
func IndicatorLine(ind IndicatorDescriptor, n float64) string {
	return ind.ShortLabel + ": " + FormatNumber(n) + ind.Unit
}

// Detail is the persistent panel shown for a selected feature.
type Detail struct {
	Feature         string   `json:"feature"`
	InstitutionID   string   `json:"institution_id,omitempty"`
	InstitutionName string   `json:"institution_name,omitempty"`
	Link            string   `json:"link,omitempty"`
	Lines           []string `json:"lines,omitempty"`
	Message         string   `json:"message,omitempty"`
}

// BuildDetail composes the panel for res. Without institution metadata the
// panel carries only a "No speech data" message. Otherwise it names the
// institution, links to its data page, reports the speech count and, when a
// different indicator is active, that indicator's value.
func BuildDetail(res Resolution, ind IndicatorDescriptor) Detail {
	d := Detail{Feature: res.Feature, InstitutionID: res.InstitutionID}
	if res.Institution == nil {
		d.Message = MsgNoSpeechData
		return d
	}
	inst := *res.Institution
	d.InstitutionName = inst.DisplayName(res.InstitutionID)
	d.Link = DataPageLink(res.InstitutionID)

	speeches := FromPtr(inst.Speeches)
	if speeches.OK {
		d.Lines = append(d.Lines, "Speeches: "+FormatNumber(speeches.N))
	} else {
		d.Lines = append(d.Lines, MsgNoSpeechData)
	}

	if ind.Key != IndicatorSpeeches && ind.Key != "" {
		if res.Value.OK {
			d.Lines = append(d.Lines, IndicatorLine(ind, res.Value.N))
		} else {
			d.Lines = append(d.Lines, ind.ShortLabel+": "+MsgNoData)
		}
	}
	return d
}

// DataPageLink returns the data page URL for an institution. Spaces are
// encoded as %20, the way browsers build the link.
func DataPageLink(institutionID string) string {
	id := strings.ReplaceAll(url.QueryEscape(institutionID), "+", "%20")
	return DataPagePath + "?central_bank=" + id
}

//Personal.AI order the ending
