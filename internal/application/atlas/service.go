package atlas

import (
	"context"
	"sort"
	"strings"

	"github.com/paulmach/orb/geojson"

	"github.com/turtacn/CentralBankTalk/internal/domain/choropleth"
	"github.com/turtacn/CentralBankTalk/internal/domain/geography"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

// Service answers choropleth questions. Every method is a pure function of
// the repository snapshot and its arguments.
type Service interface {
	Indicators() []choropleth.IndicatorDescriptor
	Palettes() []PaletteInfo
	Institutions(ctx context.Context) ([]InstitutionEntry, error)
	History(ctx context.Context, institutionID string) (*choropleth.History, error)
	Render(ctx context.Context, indicatorKey string) (*RenderResult, error)
	GeoJSON(ctx context.Context, indicatorKey string) (*geojson.FeatureCollection, error)
	FeatureValue(ctx context.Context, featureName, indicatorKey string) (*FeatureValue, error)
	Detail(ctx context.Context, featureName, indicatorKey string) (*choropleth.Detail, error)
	ScaleColor(req ScaleRequest) (*ScaleResult, error)
	Darken(color string, amount float64) *DarkenResult
	Interact(state choropleth.State, event choropleth.Event) (*InteractionResult, error)
}

// PaletteInfo describes one registered palette.
type PaletteInfo struct {
	ID          string   `json:"id"`
	NoDataColor string   `json:"no_data_color"`
	Colors      []string `json:"colors"`
}

// InstitutionEntry is one row of the institution directory.
type InstitutionEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FeatureColor is the rendered state of one boundary feature.
type FeatureColor struct {
	Name          string           `json:"name"`
	ISOA2         string           `json:"iso_a2,omitempty"`
	Code          string           `json:"iso3,omitempty"`
	InstitutionID string           `json:"institution,omitempty"`
	Value         choropleth.Value `json:"value"`
	Color         string           `json:"color"`
	HoverColor    string           `json:"hover_color"`
}

// RenderResult is everything needed to paint the map for one indicator.
type RenderResult struct {
	Indicator choropleth.IndicatorDescriptor `json:"indicator"`
	Range     choropleth.Range               `json:"range"`
	Legend    choropleth.Legend              `json:"legend"`
	Features  []FeatureColor                 `json:"features"`
	// Degraded lists datasets that failed to load and were treated as empty.
	Degraded []string `json:"degraded,omitempty"`
}

// FeatureValue is the resolution trace of one feature plus its colors.
type FeatureValue struct {
	choropleth.Resolution
	Indicator  string             `json:"indicator"`
	Color      string             `json:"color"`
	HoverColor string             `json:"hover_color"`
	Tooltip    choropleth.Tooltip `json:"tooltip"`
}

// ScaleRequest evaluates ColorFor on explicit inputs. PaletteID is a built-in
// id or an inline "#rrggbb,#rrggbb,..." list.
type ScaleRequest struct {
	Value     *float64
	Min       float64
	Max       float64
	PaletteID string
	Mode      string
	Blend     string
}

type ScaleResult struct {
	Value      choropleth.Value `json:"value"`
	Range      choropleth.Range `json:"range"`
	Palette    string           `json:"palette"`
	Mode       choropleth.Mode  `json:"mode"`
	Color      string           `json:"color"`
	HoverColor string           `json:"hover_color"`
}

type DarkenResult struct {
	Input  string  `json:"input"`
	Amount float64 `json:"amount"`
	Color  string  `json:"color"`
	// Valid is false when Input is not #rrggbb and was returned unchanged.
	Valid bool `json:"valid"`
}

// InteractionResult is the next interaction state and the visual state of
// the features it mentions.
type InteractionResult struct {
	State    choropleth.State                   `json:"state"`
	Features map[string]choropleth.FeatureState `json:"features"`
}

type service struct {
	repo             *Repository
	defaultIndicator string
	blend            choropleth.BlendSpace
	logger           logging.Logger
	metrics          *prometheus.AppMetrics
}

type ServiceOption func(*service)

// WithDefaultIndicator sets the indicator used when a request names none.
func WithDefaultIndicator(key string) ServiceOption {
	return func(s *service) {
		if key != "" {
			s.defaultIndicator = key
		}
	}
}

// WithBlendSpace selects the interpolation space used by Render.
func WithBlendSpace(b choropleth.BlendSpace) ServiceOption {
	return func(s *service) { s.blend = b }
}

func WithServiceLogger(l logging.Logger) ServiceOption {
	return func(s *service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithServiceMetrics(m *prometheus.AppMetrics) ServiceOption {
	return func(s *service) { s.metrics = m }
}

func NewService(repo *Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:             repo,
		defaultIndicator: choropleth.DefaultIndicatorKey,
		blend:            choropleth.BlendRGB,
		logger:           logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("atlas.service")
	return s
}

func (s *service) indicator(key string) (choropleth.IndicatorDescriptor, error) {
	if strings.TrimSpace(key) == "" {
		key = s.defaultIndicator
	}
	return choropleth.LookupIndicator(key)
}

// scale builds the scale for ind. The range is recomputed from the snapshot
// on every call.
func (s *service) scale(snap *Snapshot, ind choropleth.IndicatorDescriptor) (choropleth.Scale, error) {
	sc, err := choropleth.NewScale(ind, snap.Lookups.Institutions)
	if err != nil {
		return sc, err
	}
	sc.Blend = s.blend
	return sc, nil
}

func (s *service) Indicators() []choropleth.IndicatorDescriptor {
	return choropleth.Indicators()
}

func (s *service) Palettes() []PaletteInfo {
	ids := choropleth.PaletteIDs()
	out := make([]PaletteInfo, 0, len(ids))
	for _, id := range ids {
		p, err := choropleth.LookupPalette(id)
		if err != nil {
			continue
		}
		out = append(out, PaletteInfo{ID: id, NoDataColor: p.NoData(), Colors: p})
	}
	return out
}

func (s *service) Institutions(ctx context.Context) ([]InstitutionEntry, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]InstitutionEntry, 0, len(snap.Lookups.Institutions))
	for id, inst := range snap.Lookups.Institutions {
		out = append(out, InstitutionEntry{ID: id, Name: inst.DisplayName(id)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// History reads the institution's own document through the repository memo.
// A missing document surfaces as DATASET_002.
func (s *service) History(ctx context.Context, institutionID string) (*choropleth.History, error) {
	key, err := choropleth.InstitutionKey(institutionID)
	if err != nil {
		return nil, err
	}
	raw, err := s.repo.Fetch(ctx, s.repo.HistoryPath(key))
	if err != nil {
		return nil, err
	}
	h, err := choropleth.DecodeHistory(key, raw)
	if err != nil {
		return nil, err
	}
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	h.Name = snap.Lookups.Institutions[key].DisplayName(key)
	return h, nil
}

func (s *service) Render(ctx context.Context, indicatorKey string) (*RenderResult, error) {
	ind, err := s.indicator(indicatorKey)
	if err != nil {
		return nil, err
	}
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	sc, err := s.scale(snap, ind)
	if err != nil {
		return nil, err
	}

	res := &RenderResult{
		Indicator: ind,
		Range:     sc.Range,
		Legend:    choropleth.BuildLegend(sc.Range, sc.Palette, sc.Mode),
		Features:  make([]FeatureColor, 0, len(snap.Geography.Features)),
		Degraded:  degraded(snap),
	}
	for _, f := range snap.Geography.Features {
		r := snap.Lookups.Resolve(f.Name, ind)
		color := sc.Color(r.Value)
		res.Features = append(res.Features, FeatureColor{
			Name:          f.Name,
			ISOA2:         f.ISOA2,
			Code:          r.Code,
			InstitutionID: r.InstitutionID,
			Value:         r.Value,
			Color:         color,
			HoverColor:    choropleth.HoverColor(color),
		})
	}
	prometheus.RecordRender(s.metrics, ind.Key)
	return res, nil
}

func degraded(snap *Snapshot) []string {
	if !snap.Degraded() {
		return nil
	}
	names := make([]string, 0, len(snap.Failures))
	for name := range snap.Failures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *service) GeoJSON(ctx context.Context, indicatorKey string) (*geojson.FeatureCollection, error) {
	ind, err := s.indicator(indicatorKey)
	if err != nil {
		return nil, err
	}
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	sc, err := s.scale(snap, ind)
	if err != nil {
		return nil, err
	}
	prometheus.RecordRender(s.metrics, ind.Key)
	return snap.Geography.Colorize(func(f geography.Feature) geography.Fill {
		color := sc.Color(choropleth.ResolveValue(snap.Lookups, f.Name, ind))
		return geography.Fill{Color: color, Hover: choropleth.HoverColor(color)}
	}), nil
}

func (s *service) FeatureValue(ctx context.Context, featureName, indicatorKey string) (*FeatureValue, error) {
	ind, err := s.indicator(indicatorKey)
	if err != nil {
		return nil, err
	}
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	sc, err := s.scale(snap, ind)
	if err != nil {
		return nil, err
	}

	r := snap.Lookups.Resolve(featureName, ind)
	prometheus.RecordLookupMiss(s.metrics, string(r.MissedAt))
	if r.MissedAt != choropleth.StageNone {
		logging.FromContext(ctx, s.logger).Debug("Feature resolved to no data",
			logging.String("feature", featureName),
			logging.String("indicator", ind.Key),
			logging.String("stage", string(r.MissedAt)),
		)
	}

	color := sc.Color(r.Value)
	return &FeatureValue{
		Resolution: r,
		Indicator:  ind.Key,
		Color:      color,
		HoverColor: choropleth.HoverColor(color),
		Tooltip:    choropleth.BuildTooltip(featureName, r.Value, ind),
	}, nil
}

func (s *service) Detail(ctx context.Context, featureName, indicatorKey string) (*choropleth.Detail, error) {
	ind, err := s.indicator(indicatorKey)
	if err != nil {
		return nil, err
	}
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	d := choropleth.BuildDetail(snap.Lookups.Resolve(featureName, ind), ind)
	return &d, nil
}

func (s *service) ScaleColor(req ScaleRequest) (*ScaleResult, error) {
	paletteRef := req.PaletteID
	if paletteRef == "" {
		paletteRef = choropleth.PaletteBlues
	}
	p, paletteName, err := choropleth.ResolvePalette(paletteRef)
	if err != nil {
		return nil, err
	}
	mode := choropleth.ModeLinear
	if req.Mode != "" {
		if mode, err = choropleth.ParseMode(req.Mode); err != nil {
			return nil, err
		}
	}
	blend, err := choropleth.ParseBlendSpace(req.Blend)
	if err != nil {
		return nil, err
	}
	if req.Min > req.Max {
		return nil, errors.New(errors.ErrCodeValidation, "min must not exceed max")
	}

	v := choropleth.FromPtr(req.Value)
	sc := choropleth.Scale{Range: choropleth.Range{Min: req.Min, Max: req.Max}, Palette: p, Mode: mode, Blend: blend}
	color := sc.Color(v)
	return &ScaleResult{
		Value:      v,
		Range:      sc.Range,
		Palette:    paletteName,
		Mode:       mode,
		Color:      color,
		HoverColor: choropleth.HoverColor(color),
	}, nil
}

func (s *service) Darken(color string, amount float64) *DarkenResult {
	return &DarkenResult{
		Input:  color,
		Amount: amount,
		Color:  choropleth.Darken(color, amount),
		Valid:  choropleth.IsHex(color),
	}
}

func (s *service) Interact(state choropleth.State, event choropleth.Event) (*InteractionResult, error) {
	next, err := choropleth.Reduce(state, event)
	if err != nil {
		return nil, err
	}
	features := map[string]choropleth.FeatureState{}
	for _, name := range []string{featureOf(state.Hovered), selectedOf(state.Selected), featureOf(next.Hovered), selectedOf(next.Selected), event.Feature} {
		if name != "" {
			features[name] = next.VisualState(name)
		}
	}
	return &InteractionResult{State: next, Features: features}, nil
}

func featureOf(h *choropleth.Hover) string {
	if h == nil {
		return ""
	}
	return h.Feature
}

func selectedOf(s *choropleth.Selection) string {
	if s == nil {
		return ""
	}
	return s.Feature
}

//Personal.AI order the ending
