package atlas

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/CentralBankTalk/internal/config"
	"github.com/turtacn/CentralBankTalk/internal/domain/choropleth"
	"github.com/turtacn/CentralBankTalk/internal/domain/geography"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

type ServiceTestSuite struct {
	suite.Suite
	src *fakeSource
	svc Service
	ctx context.Context
}

func (s *ServiceTestSuite) SetupTest() {
	s.src = newFakeSource()
	s.svc = NewService(NewRepository(s.src), WithServiceMetrics(prometheus.NewNoopAppMetrics()))
	s.ctx = context.Background()
}

func (s *ServiceTestSuite) featureByName(res *RenderResult, name string) FeatureColor {
	for _, f := range res.Features {
		if f.Name == name {
			return f
		}
	}
	s.FailNow("feature not rendered", name)
	return FeatureColor{}
}

func (s *ServiceTestSuite) TestRender_DefaultIndicator() {
	res, err := s.svc.Render(s.ctx, "")
	s.Require().NoError(err)

	s.Equal(choropleth.IndicatorSpeeches, res.Indicator.Key)
	s.Equal(choropleth.Range{Min: 25, Max: 100}, res.Range)
	s.Len(res.Features, 4, "Antarctica excluded")
	s.Empty(res.Degraded)

	japan := s.featureByName(res, "Japan")
	s.Equal("JPN", japan.Code)
	s.Equal("bank_of_japan", japan.InstitutionID)
	s.Equal(choropleth.Some(100), japan.Value)
	s.Equal("#0f172a", japan.Color)
	s.Equal("#0b1120", japan.HoverColor)

	france := s.featureByName(res, "France")
	s.Equal("#b6c7e3", france.Color)
	s.Equal("#8995aa", france.HoverColor)

	for _, name := range []string{"Chile", "Atlantis"} {
		f := s.featureByName(res, name)
		s.False(f.Value.OK)
		s.Equal("#d1d5db", f.Color)
		s.Equal("#9da0a4", f.HoverColor)
	}

	s.Equal("#d1d5db", res.Legend.NoDataColor)
	s.Require().Len(res.Legend.Ticks, 3)
	s.Equal("63", res.Legend.Ticks[1].Label)
}

func (s *ServiceTestSuite) TestRender_PercentIndicator() {
	res, err := s.svc.Render(s.ctx, choropleth.IndicatorPressureMonetary)
	s.Require().NoError(err)
	s.Equal(choropleth.ModeLinear, res.Indicator.Mode)
	s.Equal(choropleth.Range{Min: 50, Max: 50}, res.Range)

	oranges, err := choropleth.LookupPalette(choropleth.PaletteOranges)
	s.Require().NoError(err)
	s.Equal(oranges[1], s.featureByName(res, "Japan").Color)
	s.Equal(oranges[0], s.featureByName(res, "France").Color)
}

func (s *ServiceTestSuite) TestRender_UnknownIndicator() {
	_, err := s.svc.Render(s.ctx, "gdp")
	s.True(errors.IsCode(err, errors.ErrCodeUnknownIndicator))
}

func (s *ServiceTestSuite) TestRender_AllDatasetsDown() {
	for _, p := range []string{
		config.DefaultPathCountryNameToCode,
		config.DefaultPathCountryToInstitution,
		config.DefaultPathInstitutionMetadata,
	} {
		s.src.fails[p] = errors.New(errors.ErrCodeDatasetUnavailable, "down")
	}
	res, err := s.svc.Render(s.ctx, "")
	s.Require().NoError(err)
	s.Equal(choropleth.DefaultRange, res.Range)
	s.Equal([]string{DatasetNameToCode, DatasetCodeToInst, DatasetInstitutions}, res.Degraded)
	for _, f := range res.Features {
		s.Equal("#d1d5db", f.Color, f.Name)
	}
}

func (s *ServiceTestSuite) TestGeoJSON() {
	fc, err := s.svc.GeoJSON(s.ctx, choropleth.IndicatorSpeeches)
	s.Require().NoError(err)
	s.Require().Len(fc.Features, 4)
	s.Equal("Japan", fc.Features[0].Properties["name"])
	s.Equal("#0f172a", fc.Features[0].Properties[geography.PropFill])
	s.Equal("#0b1120", fc.Features[0].Properties[geography.PropFillHover])
}

func (s *ServiceTestSuite) TestFeatureValue() {
	fv, err := s.svc.FeatureValue(s.ctx, "Japan", "")
	s.Require().NoError(err)
	s.Equal(choropleth.Some(100), fv.Value)
	s.Equal(choropleth.StageNone, fv.MissedAt)
	s.Equal("#0f172a", fv.Color)
	s.Equal([]string{"Speeches: 100"}, fv.Tooltip.Lines)

	fv, err = s.svc.FeatureValue(s.ctx, "Narnia", choropleth.IndicatorSpeakers)
	s.Require().NoError(err)
	s.Equal(choropleth.StageName, fv.MissedAt)
	s.Equal("#d1d5db", fv.Color)
	s.Empty(fv.Tooltip.Lines)
	s.Equal("Narnia", fv.Tooltip.Title)
}

func (s *ServiceTestSuite) TestDetail() {
	d, err := s.svc.Detail(s.ctx, "Japan", "")
	s.Require().NoError(err)
	s.Equal("Bank of Japan", d.InstitutionName)
	s.Equal("/data-page?central_bank=bank_of_japan", d.Link)

	d, err = s.svc.Detail(s.ctx, "Atlantis", "")
	s.Require().NoError(err)
	s.Equal(choropleth.MsgNoSpeechData, d.Message)
}

func (s *ServiceTestSuite) TestInstitutions() {
	list, err := s.svc.Institutions(s.ctx)
	s.Require().NoError(err)
	s.Equal([]InstitutionEntry{
		{ID: "banco_central_de_chile", Name: "Banco Central de Chile"},
		{ID: "bank_of_japan", Name: "Bank of Japan"},
		{ID: "banque_de_france", Name: "Banque De France"},
	}, list)
}

func (s *ServiceTestSuite) TestHistory() {
	s.src.docs["central_banks/banque_de_france.json"] = `{"year": [2020, 2019], "number_of_speeches": [15, 10]}`

	h, err := s.svc.History(s.ctx, "Banque de France")
	s.Require().NoError(err)
	s.Equal("banque_de_france", h.ID)
	s.Equal("Banque De France", h.Name)
	s.Equal(25, h.Total)
	s.Equal([]choropleth.YearCount{{Year: 2019, Speeches: 10}, {Year: 2020, Speeches: 15}}, h.Years)

	_, err = s.svc.History(s.ctx, "banque_de_france")
	s.Require().NoError(err)
	s.Equal(int32(1), s.src.Calls("central_banks/banque_de_france.json"))

	_, err = s.svc.History(s.ctx, "bank_of_japan")
	s.True(errors.IsCode(err, errors.ErrCodeDatasetNotFound))

	_, err = s.svc.History(s.ctx, "../central_banks_metadata")
	s.True(errors.IsCode(err, errors.ErrCodeValidation))
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func TestService_Palettes(t *testing.T) {
	svc := NewService(NewRepository(newFakeSource()))
	palettes := svc.Palettes()
	require.Len(t, palettes, len(choropleth.PaletteIDs()))
	for _, p := range palettes {
		assert.Equal(t, p.Colors[0], p.NoDataColor)
	}
	assert.Len(t, svc.Indicators(), len(choropleth.Indicators()))
}

func TestService_ScaleColor(t *testing.T) {
	svc := NewService(NewRepository(newFakeSource()))
	v := 25.0

	res, err := svc.ScaleColor(ScaleRequest{Value: &v, Min: 0, Max: 100, Mode: "sqrt"})
	require.NoError(t, err)
	assert.Equal(t, "#415a8b", res.Color)
	assert.Equal(t, choropleth.PaletteBlues, res.Palette)

	res, err = svc.ScaleColor(ScaleRequest{Min: 0, Max: 100})
	require.NoError(t, err)
	assert.Equal(t, "#d1d5db", res.Color)
	assert.False(t, res.Value.OK)

	_, err = svc.ScaleColor(ScaleRequest{Value: &v, Min: 0, Max: 1, PaletteID: "rainbow"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownPalette))

	zero := 0.0
	res, err = svc.ScaleColor(ScaleRequest{Value: &zero, Min: 0, Max: 1, PaletteID: "#EEE, #fff,#000"})
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", res.Color)
	assert.Equal(t, "#eeeeee,#ffffff,#000000", res.Palette)

	_, err = svc.ScaleColor(ScaleRequest{Value: &v, Min: 0, Max: 1, PaletteID: "#eee"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidPalette))

	_, err = svc.ScaleColor(ScaleRequest{Value: &v, Min: 0, Max: 1, Mode: "log"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidMode))

	_, err = svc.ScaleColor(ScaleRequest{Value: &v, Min: 2, Max: 1})
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestService_Darken(t *testing.T) {
	svc := NewService(NewRepository(newFakeSource()))
	assert.Equal(t, &DarkenResult{Input: "#ffffff", Amount: 0.25, Color: "#bfbfbf", Valid: true}, svc.Darken("#ffffff", 0.25))
	assert.Equal(t, &DarkenResult{Input: "red", Amount: 0.5, Color: "red", Valid: false}, svc.Darken("red", 0.5))
}

func TestService_Interact(t *testing.T) {
	svc := NewService(NewRepository(newFakeSource()))

	res, err := svc.Interact(choropleth.State{}, choropleth.Event{Kind: choropleth.EventPointerEnter, Feature: "Japan"})
	require.NoError(t, err)
	assert.Equal(t, choropleth.FeatureHovered, res.Features["Japan"])

	res, err = svc.Interact(res.State, choropleth.Event{Kind: choropleth.EventClick, Feature: "Chile"})
	require.NoError(t, err)
	assert.Equal(t, choropleth.FeatureSelected, res.Features["Chile"])
	assert.Equal(t, choropleth.FeatureHovered, res.Features["Japan"])

	res, err = svc.Interact(res.State, choropleth.Event{Kind: choropleth.EventScroll})
	require.NoError(t, err)
	assert.Nil(t, res.State.Selected)
	assert.Equal(t, choropleth.FeatureDefault, res.Features["Chile"])

	_, err = svc.Interact(res.State, choropleth.Event{Kind: "wiggle"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidEvent))
}

//Personal.AI order the ending
