package handle

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"fish-price-api/api/internal/geo"
	"fish-price-api/api/internal/pricing"
)

type priceResponse struct {
	Species    string  `json:"species"`
	State      string  `json:"state"`
	PriceType  string  `json:"price_type"`
	WeightKg   float64 `json:"weight_kg"`
	AvgPrice   float64 `json:"avg_price"`
	TotalPrice float64 `json:"total_price"`
	InsertedID string  `json:"inserted_id"`
}

// Price handles GET /v1/price: resolve state, look up the reference price,
// compute the total and persist the analysis record.
func (h *Handle) Price(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "GET only"})
		return
	}
	qs := r.URL.Query()

	species := qs.Get("species")
	if species == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "species is required"})
		return
	}
	weightKg, err := strconv.ParseFloat(qs.Get("weight_kg"), 64)
	if err != nil || weightKg <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weight_kg must be a number > 0"})
		return
	}
	lat, errLat := strconv.ParseFloat(qs.Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(qs.Get("lon"), 64)
	if errLat != nil || errLon != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lat/lon must be valid WGS84 degrees"})
		return
	}
	priceType, err := pricing.ParsePriceType(qs.Get("price_type"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	userID := qs.Get("user_id")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id is required"})
		return
	}
	qty, err := strconv.Atoi(qs.Get("qty_captured"))
	if err != nil || qty < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "qty_captured must be a non-negative integer"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	out, err := h.pipeline.PriceAndRecord(ctx, pricing.Query{
		Species:   species,
		WeightKg:  weightKg,
		Lat:       lat,
		Lon:       lon,
		PriceType: priceType,
	}, userID, qty)
	if err != nil {
		var unavailable *pricing.PriceUnavailableError
		switch {
		case errors.Is(err, geo.ErrRegionUnresolved):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.As(err, &unavailable):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": unavailable.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusOK, priceResponse{
		Species:    out.Result.Species,
		State:      out.Result.State,
		PriceType:  string(out.Result.PriceType),
		WeightKg:   out.Result.WeightKg,
		AvgPrice:   out.Result.AvgPrice,
		TotalPrice: out.Result.TotalPrice,
		InsertedID: out.InsertedID,
	})
}
