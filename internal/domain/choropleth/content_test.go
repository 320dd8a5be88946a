package choropleth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTooltip(t *testing.T) {
	ind, err := LookupIndicator(IndicatorSpeeches)
	require.NoError(t, err)

	tip := BuildTooltip("Japan", Some(120), ind)
	assert.Equal(t, Tooltip{Title: "Japan", Lines: []string{"Speeches: 120"}}, tip)

	tip = BuildTooltip("Narnia", NoData(), ind)
	assert.Equal(t, "Narnia", tip.Title)
	assert.Empty(t, tip.Lines)

	pct, err := LookupIndicator(IndicatorPressureMonetary)
	require.NoError(t, err)
	assert.Equal(t, []string{"Monetary pressure: 12.5%"}, BuildTooltip("Chile", Some(12.5), pct).Lines)
}

func TestBuildDetail(t *testing.T) {
	l := testLookups()
	speeches, err := LookupIndicator(IndicatorSpeeches)
	require.NoError(t, err)

	t.Run("no metadata", func(t *testing.T) {
		d := BuildDetail(l.Resolve("Freedonia", speeches), speeches)
		assert.Equal(t, MsgNoSpeechData, d.Message)
		assert.Empty(t, d.Link)
		assert.Equal(t, "bank_of_freedonia", d.InstitutionID)
	})

	t.Run("unknown feature", func(t *testing.T) {
		d := BuildDetail(l.Resolve("Narnia", speeches), speeches)
		assert.Equal(t, MsgNoSpeechData, d.Message)
		assert.Empty(t, d.InstitutionID)
	})

	t.Run("with metadata", func(t *testing.T) {
		d := BuildDetail(l.Resolve("Japan", speeches), speeches)
		assert.Empty(t, d.Message)
		assert.Equal(t, "Bank of Japan", d.InstitutionName)
		assert.Equal(t, "/data-page?central_bank=bank_of_japan", d.Link)
		assert.Equal(t, []string{"Speeches: 120"}, d.Lines)
	})

	t.Run("fallback name and missing count", func(t *testing.T) {
		d := BuildDetail(l.Resolve("C\u00f4te d'Ivoire", speeches), speeches)
		assert.Equal(t, "Bceao", d.InstitutionName)

		d = BuildDetail(l.Resolve("Sylvania", speeches), speeches)
		assert.Equal(t, []string{MsgNoSpeechData}, d.Lines)
	})

	t.Run("secondary indicator", func(t *testing.T) {
		fiscal, err := LookupIndicator(IndicatorPressureFiscal)
		require.NoError(t, err)
		d := BuildDetail(l.Resolve("Japan", fiscal), fiscal)
		assert.Equal(t, []string{"Speeches: 120", "Fiscal pressure: No data"}, d.Lines)
	})
}

func TestDataPageLink(t *testing.T) {
	assert.Equal(t, "/data-page?central_bank=ecb", DataPageLink("ecb"))
	assert.Equal(t, "/data-page?central_bank=bank%20of%20x%26y", DataPageLink("bank of x&y"))
	assert.Equal(t, "/data-page?central_bank=a%2Bb%3Dc", DataPageLink("a+b=c"))
}

//Personal.AI order the ending
