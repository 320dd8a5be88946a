package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/paulmach/orb/geojson"
)

// Float returns a pointer to v, for ScaleColorRequest.Value.
func Float(v float64) *float64 { return &v }

func indicatorQuery(indicator string) url.Values {
	if indicator == "" {
		return nil
	}
	return url.Values{"indicator": {indicator}}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Indicators lists the selectable map indicators.
func (c *Client) Indicators(ctx context.Context) ([]Indicator, error) {
	var resp listResponse[Indicator]
	if err := c.get(ctx, APIPrefix+"/indicators", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Palettes lists the registered color palettes.
func (c *Client) Palettes(ctx context.Context) ([]Palette, error) {
	var resp listResponse[Palette]
	if err := c.get(ctx, APIPrefix+"/palettes", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Institutions lists institution IDs and display names, sorted by name.
func (c *Client) Institutions(ctx context.Context) ([]Institution, error) {
	var resp listResponse[Institution]
	if err := c.get(ctx, APIPrefix+"/institutions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// InstitutionHistory returns the yearly speech series of one institution.
func (c *Client) InstitutionHistory(ctx context.Context, id string) (*InstitutionHistory, error) {
	var resp InstitutionHistory
	if err := c.get(ctx, APIPrefix+"/institutions/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Choropleth renders the map for indicator; "" selects the server default.
func (c *Client) Choropleth(ctx context.Context, indicator string) (*Choropleth, error) {
	var resp Choropleth
	if err := c.get(ctx, APIPrefix+"/choropleth", indicatorQuery(indicator), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChoroplethGeoJSON returns the boundary document with fill and fill_hover
// written onto each feature.
func (c *Client) ChoroplethGeoJSON(ctx context.Context, indicator string) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	if err := c.get(ctx, APIPrefix+"/choropleth/geojson", indicatorQuery(indicator), fc); err != nil {
		return nil, err
	}
	return fc, nil
}

// FeatureValue resolves one boundary feature by display name.
func (c *Client) FeatureValue(ctx context.Context, name, indicator string) (*FeatureValue, error) {
	var resp FeatureValue
	if err := c.get(ctx, APIPrefix+"/features/"+url.PathEscape(name)+"/value", indicatorQuery(indicator), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FeatureDetail returns the detail panel content for one feature.
func (c *Client) FeatureDetail(ctx context.Context, name, indicator string) (*FeatureDetail, error) {
	var resp FeatureDetail
	if err := c.get(ctx, APIPrefix+"/features/"+url.PathEscape(name)+"/detail", indicatorQuery(indicator), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ScaleColor evaluates the color scale for an explicit value and range.
func (c *Client) ScaleColor(ctx context.Context, req ScaleColorRequest) (*ScaleColorResult, error) {
	q := url.Values{}
	if req.Value != nil {
		q.Set("value", formatFloat(*req.Value))
	}
	q.Set("min", formatFloat(req.Min))
	q.Set("max", formatFloat(req.Max))
	for k, v := range map[string]string{"palette": req.Palette, "mode": req.Mode, "blend": req.Blend} {
		if v != "" {
			q.Set(k, v)
		}
	}

	var resp ScaleColorResult
	if err := c.get(ctx, APIPrefix+"/colors/scale", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Darken scales each channel of a #rrggbb color by (1-amount).
func (c *Client) Darken(ctx context.Context, color string, amount float64) (*DarkenResult, error) {
	q := url.Values{"color": {color}, "amount": {formatFloat(amount)}}
	var resp DarkenResult
	if err := c.get(ctx, APIPrefix+"/colors/darken", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Interact applies one pointer or dismissal event to state.
func (c *Client) Interact(ctx context.Context, state InteractionState, event InteractionEvent) (*InteractionResult, error) {
	body := struct {
		State InteractionState `json:"state"`
		Event InteractionEvent `json:"event"`
	}{state, event}
	var resp InteractionResult
	if err := c.post(ctx, APIPrefix+"/interaction", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

//Personal.AI order the ending
