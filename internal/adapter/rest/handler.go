package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kotsioskl2/vehicle-market/internal/listing/domain"
	"github.com/kotsioskl2/vehicle-market/internal/listing/usecase"
)

const maxUploadBytes = 32 << 20

// FormFactory builds a fresh form controller. Each controller owns one
// draft, so a submission never shares state with another client's.
type FormFactory func() *usecase.FormController

// Handler serves the marketplace HTTP surface.
type Handler struct {
	listings  *usecase.ListingUsecase
	forms     FormFactory
	dashboard *usecase.DashboardController
	logger    *zap.Logger
}

func NewHandler(listings *usecase.ListingUsecase, forms FormFactory, dashboard *usecase.DashboardController, logger *zap.Logger) *Handler {
	return &Handler{listings: listings, forms: forms, dashboard: dashboard, logger: logger}
}

type listingPayload struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	Engine       string   `json:"engine"`
	EngineSize   float64  `json:"engineSize"`
	Mileage      int      `json:"mileage"`
	Transmission string   `json:"transmission"`
	Color        string   `json:"color"`
	Year         int      `json:"year"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
	Location     string   `json:"location"`
	CreatedAt    string   `json:"createdAt,omitempty"`
	UpdatedAt    string   `json:"updatedAt,omitempty"`
}

func toPayload(l *domain.Listing) listingPayload {
	images := l.Images
	if images == nil {
		images = []string{}
	}
	p := listingPayload{
		ID:           l.ID,
		Name:         l.Name,
		Price:        l.Price,
		Engine:       string(l.Engine),
		EngineSize:   l.EngineSize,
		Mileage:      l.Mileage,
		Transmission: string(l.Transmission),
		Color:        l.Color,
		Year:         l.Year,
		Description:  l.Description,
		Images:       images,
		Location:     l.Location,
	}
	if !l.CreatedAt.IsZero() {
		p.CreatedAt = l.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !l.UpdatedAt.IsZero() {
		p.UpdatedAt = l.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return p
}

func toPayloads(listings []*domain.Listing) []listingPayload {
	out := make([]listingPayload, 0, len(listings))
	for _, l := range listings {
		out = append(out, toPayload(l))
	}
	return out
}

type userPayload struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}

func toUserPayload(u *domain.User) userPayload {
	p := userPayload{ID: u.ID, Email: u.Email, Role: u.Role}
	if !u.CreatedAt.IsZero() {
		p.CreatedAt = u.CreatedAt.UTC().Format(time.RFC3339)
	}
	return p
}

// parseFilterSpec builds the filter from query parameters, starting from the
// identity spec so absent parameters keep their wildcard meaning.
func parseFilterSpec(q url.Values) (domain.FilterSpec, error) {
	spec := domain.NewFilterSpec()

	spec.Search = q.Get("search")
	spec.Location = q.Get("location")
	if v := q.Get("engine"); v != "" {
		spec.Engine = domain.Engine(v)
	}
	if v := q.Get("transmission"); v != "" {
		spec.Transmission = domain.Transmission(v)
	}
	if v := q.Get("color"); v != "" {
		spec.Color = v
	}

	var err error
	parseFloat := func(key string, dst *float64) {
		if err != nil {
			return
		}
		if v := q.Get(key); v != "" {
			var f float64
			if f, err = strconv.ParseFloat(v, 64); err != nil {
				err = fmt.Errorf("%s: %q is not a number", key, v)
				return
			}
			*dst = f
		}
	}
	parseInt := func(key string, dst *int) {
		if err != nil {
			return
		}
		if v := q.Get(key); v != "" {
			var n int
			if n, err = strconv.Atoi(v); err != nil {
				err = fmt.Errorf("%s: %q is not a whole number", key, v)
				return
			}
			*dst = n
		}
	}

	parseInt("year", &spec.Year)
	parseFloat("price_min", &spec.PriceMin)
	parseFloat("price_max", &spec.PriceMax)
	parseInt("mileage_min", &spec.MileageMin)
	parseInt("mileage_max", &spec.MileageMax)
	parseFloat("engine_size_min", &spec.EngineSizeMin)
	parseFloat("engine_size_max", &spec.EngineSizeMax)

	if err != nil {
		return domain.FilterSpec{}, err
	}
	return spec, nil
}

// HandleBrowse returns the listings matching the query filter. The store is
// always consulted in full; filtering happens here, in process, so the
// response also reports how many records were fetched before filtering.
func (h *Handler) HandleBrowse(w http.ResponseWriter, r *http.Request) {
	spec, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, fetched, err := h.listings.Browse(r.Context(), spec)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"listings":     toPayloads(results),
		"totalFetched": fetched,
	})
}

func (h *Handler) HandleGetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	listing, err := h.listings.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPayload(listing))
}

// HandleCreateListing accepts a multipart form: the draft's text fields plus
// zero or more files under the "images" key. Each request gets its own form
// controller, so concurrent clients submit independently; the in-flight
// guard applies per controller, never across clients.
func (h *Handler) HandleCreateListing(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	draft := usecase.Draft{
		Name:         r.FormValue("name"),
		Price:        r.FormValue("price"),
		Engine:       r.FormValue("engine"),
		EngineSize:   r.FormValue("engineSize"),
		Mileage:      r.FormValue("mileage"),
		Transmission: r.FormValue("transmission"),
		Color:        r.FormValue("color"),
		Year:         r.FormValue("year"),
		Description:  r.FormValue("description"),
		Location:     r.FormValue("location"),
	}

	var files []usecase.File
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["images"] {
			f, err := fh.Open()
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, "unreadable upload: "+fh.Filename)
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, "unreadable upload: "+fh.Filename)
				return
			}
			files = append(files, usecase.File{Name: fh.Filename, Data: data})
		}
	}

	form := h.forms()
	form.SetDraft(draft)
	form.SetFiles(files)

	created, err := form.Submit(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/listings/"+created.ID)
	writeJSON(w, http.StatusCreated, toPayload(created))
}

func (h *Handler) HandleUpdateListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var p listingPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	updated, err := h.listings.Update(r.Context(), &domain.Listing{
		ID:           id,
		Name:         p.Name,
		Price:        p.Price,
		Engine:       domain.Engine(p.Engine),
		EngineSize:   p.EngineSize,
		Mileage:      p.Mileage,
		Transmission: domain.Transmission(p.Transmission),
		Color:        p.Color,
		Year:         p.Year,
		Description:  p.Description,
		Images:       p.Images,
		Location:     p.Location,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if updated == nil {
		writeJSONError(w, http.StatusNotFound, "listing not found")
		return
	}
	writeJSON(w, http.StatusOK, toPayload(updated))
}

func (h *Handler) HandleDeleteListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.listings.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDashboard loads listings and users together; any partial failure
// yields an error response rather than a partial dashboard.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	data, err := h.dashboard.Load(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	users := make([]userPayload, 0, len(data.Users))
	for _, u := range data.Users {
		users = append(users, toUserPayload(u))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"listings": toPayloads(data.Listings),
		"users":    users,
	})
}

func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.dashboard.DeleteUser(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeError maps the domain error taxonomy onto HTTP statuses. Validation
// failures carry their per-field detail when available.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErrs usecase.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		fields := make([]map[string]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, map[string]string{"field": fe.Field, "message": fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": fields,
		})
	case errors.Is(err, domain.ErrValidation):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, usecase.ErrSubmitInFlight):
		writeJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUpload):
		h.logger.Error("image upload failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeJSONError(w, http.StatusBadGateway, "image upload failed, please retry")
	case errors.Is(err, domain.ErrTransport):
		h.logger.Error("store unavailable",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeJSONError(w, http.StatusBadGateway, "marketplace store unavailable, please retry")
	default:
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
