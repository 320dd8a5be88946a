package choropleth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

func TestDecodeInstitutions(t *testing.T) {
	raw := []byte(`{
		"bank_of_japan": {
			"name": "Bank of Japan",
			"number_of_speeches": 120,
			"number_of_speakers": 9,
			"audiences": {"Academic": 10, "central-bank": 30, "financial market": 40, "political": 20},
			"policy_pressures": {"monetary_dominance": 0.5, "fiscal": 0.2, "financial": "n/a"}
		},
		"reserve_bank": {"number_of_speeches": "many"},
		"broken": 42,
		"nulled": null
	}`)

	got, report, err := DecodeInstitutions(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Accepted)
	assert.Equal(t, []string{"broken", "nulled"}, report.Skipped)

	boj := got["bank_of_japan"]
	assert.Equal(t, "Bank of Japan", boj.Name)
	require.NotNil(t, boj.Speeches)
	assert.Equal(t, 120.0, *boj.Speeches)
	require.NotNil(t, boj.Audiences.CentralBank)
	assert.Equal(t, 30.0, *boj.Audiences.CentralBank)
	require.NotNil(t, boj.Audiences.FinancialMarket)
	require.NotNil(t, boj.Pressures.Monetary)
	assert.Equal(t, 0.5, *boj.Pressures.Monetary)
	assert.Nil(t, boj.Pressures.Financial)

	rb, ok := got["reserve_bank"]
	require.True(t, ok)
	assert.Nil(t, rb.Speeches)
}

func TestDecodeInstitutions_NotObject(t *testing.T) {
	_, _, err := DecodeInstitutions([]byte(`[1,2]`))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetParseError))
}

func TestDecodeStringMap(t *testing.T) {
	got, report, err := DecodeStringMap([]byte(`{"France":"FRA","Nowhere":"","Odd":7}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"France": "FRA"}, got)
	assert.Equal(t, 1, report.Accepted)
	assert.Equal(t, []string{"Nowhere", "Odd"}, report.Skipped)

	_, _, err = DecodeStringMap([]byte(`"FRA"`))
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetParseError))
}

func TestAudienceShare(t *testing.T) {
	a := AudienceCounts{Academic: f(25), Political: f(75)}
	assert.Equal(t, 100.0, a.Total())
	assert.Equal(t, Some(25), a.Share(AudienceAcademic))
	assert.False(t, a.Share(AudienceCentralBank).OK)
	assert.False(t, a.Share("unknown").OK)

	zero := AudienceCounts{Academic: f(0)}
	assert.False(t, zero.Share(AudienceAcademic).OK)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Bank of Japan", Institution{Name: "Bank of Japan"}.DisplayName("bank_of_japan"))
	assert.Equal(t, "Bank Of Japan", Institution{Name: "  "}.DisplayName("bank_of_japan"))
	assert.Equal(t, "Österreichische Nationalbank", TitleFromID("österreichische_nationalbank"))
	assert.Equal(t, "", TitleFromID(""))
}

//Personal.AI order the ending
