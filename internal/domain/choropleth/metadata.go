package choropleth

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

// Institution is the validated metadata record of one central bank.
// Every metric is optional.
type Institution struct {
	Name      string          `json:"name,omitempty"`
	Speeches  *float64        `json:"number_of_speeches,omitempty"`
	Speakers  *float64        `json:"number_of_speakers,omitempty"`
	Audiences AudienceCounts  `json:"audiences"`
	Pressures PolicyPressures `json:"policy_pressures"`
}

// AudienceCounts holds the number (or weight) of speeches addressed to each
// audience category.
type AudienceCounts struct {
	Academic        *float64 `json:"academic,omitempty"`
	CentralBank     *float64 `json:"central_bank,omitempty"`
	FinancialMarket *float64 `json:"financial_market,omitempty"`
	Political       *float64 `json:"political,omitempty"`
}

// Audience categories.
const (
	AudienceAcademic        = "academic"
	AudienceCentralBank     = "central_bank"
	AudienceFinancialMarket = "financial_market"
	AudiencePolitical       = "political"
)

func (a AudienceCounts) field(category string) *float64 {
	switch category {
	case AudienceAcademic:
		return a.Academic
	case AudienceCentralBank:
		return a.CentralBank
	case AudienceFinancialMarket:
		return a.FinancialMarket
	case AudiencePolitical:
		return a.Political
	}
	return nil
}

// Total sums the present categories.
func (a AudienceCounts) Total() float64 {
	var total float64
	for _, p := range []*float64{a.Academic, a.CentralBank, a.FinancialMarket, a.Political} {
		if p != nil {
			total += *p
		}
	}
	return total
}

// Share returns category's percentage of Total. It is absent when the
// category is missing or the total is zero.
func (a AudienceCounts) Share(category string) Value {
	p := a.field(category)
	if p == nil {
		return NoData()
	}
	total := a.Total()
	if total == 0 {
		return NoData()
	}
	return Some(*p / total * 100)
}

// PolicyPressures holds the share of communication responding to each
// pressure, as fractions in [0,1].
type PolicyPressures struct {
	Monetary  *float64 `json:"monetary,omitempty"`
	Fiscal    *float64 `json:"fiscal,omitempty"`
	Financial *float64 `json:"financial,omitempty"`
}

// DisplayName returns the metadata name, or id with underscores replaced by
// spaces and every word capitalized.
func (i Institution) DisplayName(id string) string {
	if strings.TrimSpace(i.Name) != "" {
		return i.Name
	}
	return TitleFromID(id)
}

// TitleFromID turns "bank_of_japan" into "Bank Of Japan".
func TitleFromID(id string) string {
	words := strings.Fields(strings.ReplaceAll(id, "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// ─────────────────────────────────────────────────────────────────────────────
// Boundary decoding
// ─────────────────────────────────────────────────────────────────────────────

// DecodeReport describes what DecodeInstitutions accepted and dropped.
type DecodeReport struct {
	Accepted int
	Skipped  []string
}

// DecodeInstitutions validates the raw institution metadata document.
//
// The document must be a JSON object keyed by institution identifier. Each
// record is decoded on its own: a record that is not an object is skipped and
// reported, and a metric that is not a finite number is treated as absent.
// Only a document that is not an object at all is an error.
func DecodeInstitutions(raw []byte) (map[string]Institution, DecodeReport, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, DecodeReport{}, errors.Wrap(err, errors.ErrCodeDatasetParseError, "institution metadata is not a JSON object")
	}

	out := make(map[string]Institution, len(doc))
	var report DecodeReport
	for id, rec := range doc {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(rec, &obj); err != nil || obj == nil {
			report.Skipped = append(report.Skipped, id)
			continue
		}
		out[id] = decodeInstitution(obj)
	}
	sort.Strings(report.Skipped)
	report.Accepted = len(out)
	return out, report, nil
}

func decodeInstitution(obj map[string]json.RawMessage) Institution {
	inst := Institution{
		Name:     stringField(obj["name"]),
		Speeches: numberField(obj["number_of_speeches"]),
		Speakers: numberField(obj["number_of_speakers"]),
	}

	if aud := objectField(obj["audiences"]); aud != nil {
		for k, v := range aud {
			n := numberField(v)
			switch canonicalKey(k) {
			case AudienceAcademic:
				inst.Audiences.Academic = n
			case AudienceCentralBank:
				inst.Audiences.CentralBank = n
			case AudienceFinancialMarket:
				inst.Audiences.FinancialMarket = n
			case AudiencePolitical:
				inst.Audiences.Political = n
			}
		}
	}

	if pp := objectField(obj["policy_pressures"]); pp != nil {
		for k, v := range pp {
			n := numberField(v)
			switch strings.TrimSuffix(canonicalKey(k), "_dominance") {
			case "monetary":
				inst.Pressures.Monetary = n
			case "fiscal":
				inst.Pressures.Fiscal = n
			case "financial":
				inst.Pressures.Financial = n
			}
		}
	}
	return inst
}

// canonicalKey folds "Financial Market" and "financial-market" to
// "financial_market".
func canonicalKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(k)
}

func numberField(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}

func stringField(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func objectField(raw json.RawMessage) map[string]json.RawMessage {
	var obj map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &obj) != nil {
		return nil
	}
	return obj
}

// DecodeStringMap validates a flat string-to-string mapping document. Entries
// whose value is not a non-empty string are skipped and reported.
func DecodeStringMap(raw []byte) (map[string]string, DecodeReport, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, DecodeReport{}, errors.Wrap(err, errors.ErrCodeDatasetParseError, "mapping is not a JSON object")
	}
	out := make(map[string]string, len(doc))
	var report DecodeReport
	for k, v := range doc {
		s := stringField(v)
		if s == "" {
			report.Skipped = append(report.Skipped, k)
			continue
		}
		out[k] = s
	}
	sort.Strings(report.Skipped)
	report.Accepted = len(out)
	return out, report, nil
}

//Personal.AI order the ending
