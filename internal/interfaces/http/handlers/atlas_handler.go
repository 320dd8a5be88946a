// Atlas HTTP handler: indicator catalog, choropleth rendering, feature
// lookups, color helpers and the interaction reducer.

package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/CentralBankTalk/internal/application/atlas"
	"github.com/turtacn/CentralBankTalk/internal/domain/choropleth"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

// URL parameters.
const (
	FeatureNameParam   = "name"
	InstitutionIDParam = "id"
)

// AtlasHandler handles HTTP requests for the choropleth atlas.
type AtlasHandler struct {
	svc    atlas.Service
	logger logging.Logger
}

// NewAtlasHandler creates a new AtlasHandler.
func NewAtlasHandler(svc atlas.Service, logger logging.Logger) *AtlasHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &AtlasHandler{svc: svc, logger: logger.Named("http.atlas")}
}

// InteractionRequest is the request body of POST /interaction.
type InteractionRequest struct {
	State choropleth.State `json:"state"`
	Event choropleth.Event `json:"event"`
}

// ListResponse wraps collection payloads.
type ListResponse struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
}

// Indicators handles GET /api/v1/indicators
func (h *AtlasHandler) Indicators(w http.ResponseWriter, r *http.Request) {
	items := h.svc.Indicators()
	writeJSON(w, http.StatusOK, ListResponse{Items: items, Total: len(items)})
}

// Palettes handles GET /api/v1/palettes
func (h *AtlasHandler) Palettes(w http.ResponseWriter, r *http.Request) {
	items := h.svc.Palettes()
	writeJSON(w, http.StatusOK, ListResponse{Items: items, Total: len(items)})
}

// Institutions handles GET /api/v1/institutions
func (h *AtlasHandler) Institutions(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Institutions(r.Context())
	if err != nil {
		h.fail(w, r, "failed to list institutions", err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Items: items, Total: len(items)})
}

// InstitutionHistory handles GET /api/v1/institutions/{id}
func (h *AtlasHandler) InstitutionHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, InstitutionIDParam)
	if unescaped, err := url.PathUnescape(id); err == nil {
		id = unescaped
	}
	res, err := h.svc.History(r.Context(), id)
	if err != nil {
		h.fail(w, r, "failed to load institution history", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Choropleth handles GET /api/v1/choropleth?indicator=
func (h *AtlasHandler) Choropleth(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Render(r.Context(), r.URL.Query().Get("indicator"))
	if err != nil {
		h.fail(w, r, "failed to render choropleth", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ChoroplethGeoJSON handles GET /api/v1/choropleth/geojson?indicator=
func (h *AtlasHandler) ChoroplethGeoJSON(w http.ResponseWriter, r *http.Request) {
	fc, err := h.svc.GeoJSON(r.Context(), r.URL.Query().Get("indicator"))
	if err != nil {
		h.fail(w, r, "failed to export geojson", err)
		return
	}
	writeGeoJSON(w, fc)
}

// FeatureValue handles GET /api/v1/features/{name}/value?indicator=
func (h *AtlasHandler) FeatureValue(w http.ResponseWriter, r *http.Request) {
	name, ok := featureName(w, r)
	if !ok {
		return
	}
	res, err := h.svc.FeatureValue(r.Context(), name, r.URL.Query().Get("indicator"))
	if err != nil {
		h.fail(w, r, "failed to resolve feature", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// FeatureDetail handles GET /api/v1/features/{name}/detail?indicator=
func (h *AtlasHandler) FeatureDetail(w http.ResponseWriter, r *http.Request) {
	name, ok := featureName(w, r)
	if !ok {
		return
	}
	res, err := h.svc.Detail(r.Context(), name, r.URL.Query().Get("indicator"))
	if err != nil {
		h.fail(w, r, "failed to build feature detail", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ScaleColor handles GET /api/v1/colors/scale?value=&min=&max=&palette=&mode=&blend=
// An absent value yields the no-data color.
func (h *AtlasHandler) ScaleColor(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := atlas.ScaleRequest{
		Min:       choropleth.DefaultRange.Min,
		Max:       choropleth.DefaultRange.Max,
		PaletteID: q.Get("palette"),
		Mode:      q.Get("mode"),
		Blend:     q.Get("blend"),
	}

	v, present, err := queryFloat(r, "value")
	if err != nil {
		writeAppError(w, err)
		return
	}
	if present {
		req.Value = &v
	}
	if n, present, err := queryFloat(r, "min"); err != nil {
		writeAppError(w, err)
		return
	} else if present {
		req.Min = n
	}
	if n, present, err := queryFloat(r, "max"); err != nil {
		writeAppError(w, err)
		return
	} else if present {
		req.Max = n
	}

	res, err := h.svc.ScaleColor(req)
	if err != nil {
		h.fail(w, r, "failed to scale color", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Darken handles GET /api/v1/colors/darken?color=&amount=
// The amount defaults to the hover amount. A color that is not #rrggbb is
// echoed back with valid=false.
func (h *AtlasHandler) Darken(w http.ResponseWriter, r *http.Request) {
	color := strings.TrimSpace(r.URL.Query().Get("color"))
	if color == "" {
		writeAppError(w, errors.New(errors.ErrCodeValidation, "color is required"))
		return
	}
	amount, present, err := queryFloat(r, "amount")
	if err != nil {
		writeAppError(w, err)
		return
	}
	if !present {
		amount = choropleth.HoverAmount
	}
	writeJSON(w, http.StatusOK, h.svc.Darken(color, amount))
}

// Interact handles POST /api/v1/interaction
func (h *AtlasHandler) Interact(w http.ResponseWriter, r *http.Request) {
	var req InteractionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	res, err := h.svc.Interact(req.State, req.Event)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AtlasHandler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	log := logging.FromContext(r.Context(), h.logger)
	if errors.IsServerError(errors.GetCode(err)) {
		log.Error(msg, logging.Err(err), logging.String("path", r.URL.Path))
	} else {
		log.Debug(msg, logging.Err(err), logging.String("path", r.URL.Path))
	}
	writeAppError(w, err)
}

// featureName reads and unescapes the {name} URL parameter.
func featureName(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := chi.URLParam(r, FeatureNameParam)
	name, err := url.PathUnescape(raw)
	if err != nil {
		name = raw
	}
	if strings.TrimSpace(name) == "" {
		writeAppError(w, errors.New(errors.ErrCodeValidation, "feature name is required"))
		return "", false
	}
	return name, true
}

//Personal.AI order the ending
