package client

// Wire types of the atlas API. A nil *float64 value means "no data".

type Indicator struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	ShortLabel string `json:"short_label"`
	Unit       string `json:"unit,omitempty"`
	Palette    string `json:"palette"`
	Mode       string `json:"mode"`
}

type Palette struct {
	ID          string   `json:"id"`
	NoDataColor string   `json:"no_data_color"`
	Colors      []string `json:"colors"`
}

type Institution struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type YearCount struct {
	Year     int `json:"year"`
	Speeches int `json:"speeches"`
}

// InstitutionHistory is one central bank's speeches per year.
type InstitutionHistory struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Total    int         `json:"total_speeches"`
	Speakers *float64    `json:"number_of_speakers,omitempty"`
	Years    []YearCount `json:"years"`
}

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type GradientStop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

type Tick struct {
	Value    float64 `json:"value"`
	Label    string  `json:"label"`
	Position float64 `json:"position"`
}

type Legend struct {
	NoDataColor string         `json:"no_data_color"`
	Stops       []GradientStop `json:"stops"`
	Ticks       []Tick         `json:"ticks"`
	Mode        string         `json:"mode"`
}

// FeatureColor is one rendered boundary feature.
type FeatureColor struct {
	Name        string   `json:"name"`
	ISOA2       string   `json:"iso_a2,omitempty"`
	ISO3        string   `json:"iso3,omitempty"`
	Institution string   `json:"institution,omitempty"`
	Value       *float64 `json:"value"`
	Color       string   `json:"color"`
	HoverColor  string   `json:"hover_color"`
}

// Choropleth is a full map render for one indicator.
type Choropleth struct {
	Indicator Indicator      `json:"indicator"`
	Range     Range          `json:"range"`
	Legend    Legend         `json:"legend"`
	Features  []FeatureColor `json:"features"`
	Degraded  []string       `json:"degraded,omitempty"`
}

type Tooltip struct {
	Title string   `json:"title"`
	Lines []string `json:"lines,omitempty"`
}

// FeatureValue is the lookup trace of one feature. MissedAt names the
// stage (name, code, institution, metric) where a no-data lookup stopped.
type FeatureValue struct {
	Feature       string   `json:"feature"`
	Code          string   `json:"code,omitempty"`
	InstitutionID string   `json:"institution_id,omitempty"`
	Value         *float64 `json:"value"`
	MissedAt      string   `json:"missed_at,omitempty"`
	Indicator     string   `json:"indicator"`
	Color         string   `json:"color"`
	HoverColor    string   `json:"hover_color"`
	Tooltip       Tooltip  `json:"tooltip"`
}

type FeatureDetail struct {
	Feature         string   `json:"feature"`
	InstitutionID   string   `json:"institution_id,omitempty"`
	InstitutionName string   `json:"institution_name,omitempty"`
	Link            string   `json:"link,omitempty"`
	Lines           []string `json:"lines,omitempty"`
	Message         string   `json:"message,omitempty"`
}

// ScaleColorRequest evaluates the color scale on explicit inputs. Palette is
// a palette id or an inline "#rrggbb,..." list. Empty Palette and Mode select
// the server defaults.
type ScaleColorRequest struct {
	Value   *float64
	Min     float64
	Max     float64
	Palette string
	Mode    string
	Blend   string
}

type ScaleColorResult struct {
	Value      *float64 `json:"value"`
	Range      Range    `json:"range"`
	Palette    string   `json:"palette"`
	Mode       string   `json:"mode"`
	Color      string   `json:"color"`
	HoverColor string   `json:"hover_color"`
}

type DarkenResult struct {
	Input  string  `json:"input"`
	Amount float64 `json:"amount"`
	Color  string  `json:"color"`
	Valid  bool    `json:"valid"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Hover struct {
	Feature string `json:"feature"`
	Pointer Point  `json:"pointer"`
}

type Selection struct {
	Feature string `json:"feature"`
	Anchor  Point  `json:"anchor"`
}

// InteractionState is the map's hover and selection state.
type InteractionState struct {
	Hovered  *Hover     `json:"hovered"`
	Selected *Selection `json:"selected"`
}

// InteractionEvent kinds: pointer_enter, pointer_move, pointer_leave, click,
// outside_click, scroll and close.
type InteractionEvent struct {
	Kind    string `json:"kind"`
	Feature string `json:"feature,omitempty"`
	Pointer Point  `json:"pointer"`
}

// InteractionResult maps each mentioned feature to default, hovered or
// selected.
type InteractionResult struct {
	State    InteractionState  `json:"state"`
	Features map[string]string `json:"features"`
}

// listResponse is the envelope of collection endpoints.
type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

//Personal.AI order the ending
