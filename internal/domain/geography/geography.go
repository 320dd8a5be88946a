// Package geography decodes the world boundary document the choropleth is
// drawn on and writes computed fills back onto it.
package geography

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

// Format identifies the encoding of a boundary document.
type Format string

const (
	FormatGeoJSON  Format = "geojson"
	FormatTopoJSON Format = "topojson"
)

// Property keys consulted on each feature, in order of preference.
var (
	nameKeys  = []string{"name", "NAME", "ADMIN"}
	isoA2Keys = []string{"ISO_A2", "iso_a2"}
)

// Property keys written by Colorize.
const (
	PropFill      = "fill"
	PropFillHover = "fill_hover"
)

// Feature is one country-level boundary. Geometry is nil for TopoJSON input;
// only properties are read from arcs-based documents.
type Feature struct {
	Name       string
	ISOA2      string
	Properties geojson.Properties
	Geometry   orb.Geometry
}

// Collection is a decoded boundary document.
type Collection struct {
	Format   Format
	Features []Feature
}

// Decode sniffs the document type and decodes a GeoJSON FeatureCollection or
// a TopoJSON Topology.
func Decode(raw []byte) (*Collection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeGeographyParse, "boundary document is not a JSON object")
	}
	switch head.Type {
	case "FeatureCollection":
		return decodeGeoJSON(raw)
	case "Topology":
		return decodeTopoJSON(raw)
	default:
		return nil, errors.New(errors.ErrCodeGeographyUnsupported, "unsupported boundary document type").WithDetail(head.Type)
	}
}

func decodeGeoJSON(raw []byte) (*Collection, error) {
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeGeographyParse, "invalid GeoJSON")
	}
	c := &Collection{Format: FormatGeoJSON, Features: make([]Feature, 0, len(fc.Features))}
	for _, f := range fc.Features {
		props := f.Properties
		if props == nil {
			props = geojson.Properties{}
		}
		c.Features = append(c.Features, Feature{
			Name:       firstString(props, nameKeys),
			ISOA2:      firstString(props, isoA2Keys),
			Properties: props,
			Geometry:   f.Geometry,
		})
	}
	return c, nil
}

type topology struct {
	Objects map[string]struct {
		Geometries []struct {
			Properties map[string]interface{} `json:"properties"`
		} `json:"geometries"`
	} `json:"objects"`
}

func decodeTopoJSON(raw []byte) (*Collection, error) {
	var topo topology
	if err := json.Unmarshal(raw, &topo); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeGeographyParse, "invalid TopoJSON")
	}
	c := &Collection{Format: FormatTopoJSON}
	for _, key := range sortedKeys(topo.Objects) {
		for _, g := range topo.Objects[key].Geometries {
			props := geojson.Properties(g.Properties)
			if props == nil {
				props = geojson.Properties{}
			}
			c.Features = append(c.Features, Feature{
				Name:       firstString(props, nameKeys),
				ISOA2:      firstString(props, isoA2Keys),
				Properties: props,
			})
		}
	}
	return c, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func firstString(props geojson.Properties, keys []string) string {
	for _, k := range keys {
		s, _ := props[k].(string)
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// Exclude returns a copy of c without features whose ISO_A2 code is listed.
// Codes compare case-insensitively.
func (c *Collection) Exclude(isoA2 ...string) *Collection {
	if len(isoA2) == 0 {
		return c
	}
	skip := make(map[string]struct{}, len(isoA2))
	for _, code := range isoA2 {
		skip[strings.ToUpper(code)] = struct{}{}
	}
	out := &Collection{Format: c.Format, Features: make([]Feature, 0, len(c.Features))}
	for _, f := range c.Features {
		if _, ok := skip[strings.ToUpper(f.ISOA2)]; ok {
			continue
		}
		out.Features = append(out.Features, f)
	}
	return out
}

// Fill is the pair of colors written onto one exported feature.
type Fill struct {
	Color string
	Hover string
}

// Colorize exports c as a GeoJSON FeatureCollection with fill and fill_hover
// set on every feature. The source properties are cloned, never modified.
func (c *Collection) Colorize(fill func(Feature) Fill) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range c.Features {
		out := geojson.NewFeature(f.Geometry)
		out.Properties = f.Properties.Clone()
		if out.Properties == nil {
			out.Properties = geojson.Properties{}
		}
		fl := fill(f)
		out.Properties[PropFill] = fl.Color
		out.Properties[PropFillHover] = fl.Hover
		fc.Append(out)
	}
	return fc
}

//Personal.AI order the ending
