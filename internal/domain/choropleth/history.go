package choropleth

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

// YearCount is the number of speeches an institution gave in one year.
type YearCount struct {
	Year     int `json:"year"`
	Speeches int `json:"speeches"`
}

// History is the per-year speech series of one institution, read from its
// own document next to the metadata.
type History struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Total    int         `json:"total_speeches"`
	Speakers *float64    `json:"number_of_speakers,omitempty"`
	Years    []YearCount `json:"years"`
}

type historyDoc struct {
	Year     []json.RawMessage `json:"year"`
	Speeches []json.RawMessage `json:"number_of_speeches"`
	Speakers *float64          `json:"number_of_speakers"`
}

// InstitutionKey turns a directory id or display name into the document key:
// lower case, spaces as underscores. Anything outside [a-z0-9_-] is rejected
// so the key can never leave the history directory.
func InstitutionKey(id string) (string, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(id)), " ", "_")
	if key == "" {
		return "", errors.New(errors.ErrCodeValidation, "institution id is required")
	}
	for _, r := range key {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' && r != '-' {
			return "", errors.New(errors.ErrCodeValidation, "invalid institution id").WithDetail(id)
		}
	}
	return key, nil
}

// DecodeHistory pairs year[i] with number_of_speeches[i]. The series is cut
// to the shorter array, unreadable pairs are dropped and years are sorted.
func DecodeHistory(key string, raw []byte) (*History, error) {
	var doc historyDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatasetParseError, "institution history is not a JSON object").WithDetail(key)
	}
	n := len(doc.Year)
	if len(doc.Speeches) < n {
		n = len(doc.Speeches)
	}
	h := &History{ID: key, Speakers: doc.Speakers, Years: make([]YearCount, 0, n)}
	for i := 0; i < n; i++ {
		year, ok := integer(doc.Year[i])
		if !ok {
			continue
		}
		count, ok := integer(doc.Speeches[i])
		if !ok || count < 0 {
			continue
		}
		h.Years = append(h.Years, YearCount{Year: year, Speeches: count})
		h.Total += count
	}
	sort.SliceStable(h.Years, func(i, j int) bool { return h.Years[i].Year < h.Years[j].Year })
	return h, nil
}

// integer accepts a JSON number or a numeric string holding a whole number.
func integer(raw json.RawMessage) (int, bool) {
	s := strings.TrimSpace(string(raw))
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

//Personal.AI order the ending
