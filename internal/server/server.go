// Package server exposes a read-only local HTTP proxy over the Dotlas
// client, so browser notebooks can query the API without embedding the key
// in frontend code.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/dotlas/api-client-go/pkg/dotlas"
)

type handler struct {
	client dotlas.Client
	log    *zap.Logger
}

// New builds the proxy router around a configured client.
func New(client dotlas.Client) http.Handler {
	h := &handler{
		client: client,
		log:    zap.L().With(zap.String("component", "server")),
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/cities", h.listCities)
	r.Get("/cities/{city}/places", h.listPlaces)
	r.Get("/cities/{city}/areas", h.listAreas)
	r.Get("/cities/{city}/stats", h.cityStats)
	r.Get("/cities/{city}/areas/{area}/stats", h.areaStats)
	r.Get("/cities/{city}/boundary", h.cityBoundary)
	r.Get("/competition/types", h.listTypes)
	r.Get("/competition/nearby", h.nearbyCompetition)
	r.Get("/territory/time", h.territoryTime)
	r.Get("/territory/distance", h.territoryDistance)

	return r
}

func (h *handler) listCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.client.ListCities(r.Context())
	h.respond(w, cities, err)
}

func (h *handler) listPlaces(w http.ResponseWriter, r *http.Request) {
	places, err := h.client.ListPlaces(r.Context(), chi.URLParam(r, "city"))
	h.respond(w, places, err)
}

func (h *handler) listAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.client.ListAreas(r.Context(), chi.URLParam(r, "city"))
	h.respond(w, areas, err)
}

func (h *handler) cityStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.client.CityStats(r.Context(), chi.URLParam(r, "city"))
	h.respond(w, stats, err)
}

func (h *handler) areaStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.client.AreaStats(r.Context(), chi.URLParam(r, "city"), chi.URLParam(r, "area"))
	h.respond(w, stats, err)
}

func (h *handler) cityBoundary(w http.ResponseWriter, r *http.Request) {
	fc, err := h.client.CityBoundary(r.Context(), chi.URLParam(r, "city"))
	h.respond(w, fc, err)
}

func (h *handler) listTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.client.ListCommercialTypes(r.Context())
	h.respond(w, types, err)
}

func (h *handler) nearbyCompetition(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, lng, ok := coordinates(w, r)
	if !ok {
		return
	}
	radius, _ := strconv.Atoi(q.Get("radius_meters"))

	resp, err := h.client.NearbyCompetition(r.Context(), dotlas.NearbyCompetitionRequest{
		Latitude:        lat,
		Longitude:       lng,
		City:            q.Get("city"),
		CommercialType:  q.Get("commercial_type"),
		RadiusMeters:    radius,
		BrandFilters:    q["brand_filters"],
		CategoryFilters: q["category_filters"],
	})
	h.respond(w, resp, err)
}

func (h *handler) territoryTime(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, lng, ok := coordinates(w, r)
	if !ok {
		return
	}
	minutes, _ := strconv.Atoi(q.Get("time_minutes"))

	resp, err := h.client.SalesTerritory(r.Context(), dotlas.SalesTerritoryRequest{
		Latitude:       lat,
		Longitude:      lng,
		City:           q.Get("city"),
		ModeOfMobility: q.Get("mode_of_mobility"),
		TimeMinutes:    minutes,
	})
	h.respond(w, resp, err)
}

func (h *handler) territoryDistance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, lng, ok := coordinates(w, r)
	if !ok {
		return
	}
	meters, _ := strconv.Atoi(q.Get("distance_meters"))

	resp, err := h.client.SalesTerritory(r.Context(), dotlas.SalesTerritoryRequest{
		Latitude:       lat,
		Longitude:      lng,
		City:           q.Get("city"),
		ModeOfMobility: q.Get("mode_of_mobility"),
		DistanceMeters: meters,
	})
	h.respond(w, resp, err)
}

// coordinates parses latitude/longitude query parameters, writing a 400 on
// malformed input.
func coordinates(w http.ResponseWriter, r *http.Request) (lat, lng float64, ok bool) {
	q := r.URL.Query()
	lat, latErr := strconv.ParseFloat(q.Get("latitude"), 64)
	lng, lngErr := strconv.ParseFloat(q.Get("longitude"), 64)
	if latErr != nil || lngErr != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "latitude and longitude are required numbers"})
		return 0, 0, false
	}
	return lat, lng, true
}

func (h *handler) respond(w http.ResponseWriter, v any, err error) {
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// writeError maps the client error taxonomy onto proxy statuses. Upstream
// auth and availability problems surface as 502 so callers can tell proxy
// misconfiguration from their own bad requests.
func (h *handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	switch {
	case dotlas.IsValidation(err):
		status = http.StatusBadRequest
	case dotlas.IsNotFound(err):
		status = http.StatusNotFound
	}

	h.log.Warn("upstream call failed", zap.Int("status", status), zap.Error(err))
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
