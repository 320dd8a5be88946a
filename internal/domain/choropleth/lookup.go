package choropleth

import (
	"golang.org/x/text/unicode/norm"
)

// Stage names the lookup step at which a resolution stopped.
type Stage string

const (
	StageNone        Stage = ""
	StageName        Stage = "name"
	StageCode        Stage = "code"
	StageInstitution Stage = "institution"
	StageMetric      Stage = "metric"
)

// Lookups is one immutable snapshot of the three join tables. Any of them
// may be empty; an empty table simply makes every lookup through it miss.
type Lookups struct {
	NameToCode        map[string]string
	CodeToInstitution map[string]string
	Institutions      map[string]Institution

	// nfcNames indexes NameToCode by NFC-normalized key.
	nfcNames map[string]string
}

// NewLookups builds a snapshot. The maps are retained, not copied, and must
// not be mutated afterwards.
func NewLookups(nameToCode, codeToInstitution map[string]string, institutions map[string]Institution) Lookups {
	l := Lookups{
		NameToCode:        nameToCode,
		CodeToInstitution: codeToInstitution,
		Institutions:      institutions,
	}
	if len(nameToCode) > 0 {
		l.nfcNames = make(map[string]string, len(nameToCode))
		for k, v := range nameToCode {
			l.nfcNames[norm.NFC.String(k)] = v
		}
	}
	return l
}

// code resolves a display name. The exact key wins; otherwise composed and
// decomposed Unicode spellings of the same name are treated as equal. There
// is no case folding.
func (l Lookups) code(name string) (string, bool) {
	if c, ok := l.NameToCode[name]; ok && c != "" {
		return c, true
	}
	nfc := norm.NFC.String(name)
	if l.nfcNames != nil {
		c, ok := l.nfcNames[nfc]
		return c, ok && c != ""
	}
	c, ok := l.NameToCode[nfc]
	return c, ok && c != ""
}

// Resolution is the full trace of one feature lookup.
type Resolution struct {
	Feature       string       `json:"feature"`
	Code          string       `json:"code,omitempty"`
	InstitutionID string       `json:"institution_id,omitempty"`
	Institution   *Institution `json:"-"`
	Value         Value        `json:"value"`
	MissedAt      Stage        `json:"missed_at,omitempty"`
}

// Resolve walks name → code → institution → metadata → accessor. It never
// fails; a miss at any stage yields no data and records the stage.
func (l Lookups) Resolve(featureName string, ind IndicatorDescriptor) Resolution {
	res := Resolution{Feature: featureName}

	code, ok := l.code(featureName)
	if !ok {
		res.MissedAt = StageName
		return res
	}
	res.Code = code

	id, ok := l.CodeToInstitution[code]
	if !ok || id == "" {
		res.MissedAt = StageCode
		return res
	}
	res.InstitutionID = id

	inst, ok := l.Institutions[id]
	if !ok {
		res.MissedAt = StageInstitution
		return res
	}
	res.Institution = &inst

	res.Value = ind.Value(inst)
	if !res.Value.OK {
		res.MissedAt = StageMetric
	}
	return res
}

// ResolveValue returns the indicator value of the named feature, or no data.
func ResolveValue(l Lookups, featureName string, ind IndicatorDescriptor) Value {
	return l.Resolve(featureName, ind).Value
}

//Personal.AI order the ending
