package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fish-price-api/api/internal/pricing"
	"fish-price-api/api/internal/store"
)

type analysisRequest struct {
	UserID      string           `json:"user_id"`
	FishClass   string           `json:"fish_class"`
	Location    pricing.Location `json:"location"`
	QtyCaptured int              `json:"qty_captured"`
	TotalPrice  float64          `json:"total_price"`
	WeightKg    float64          `json:"weight_kg"`
}

// Analysis handles POST /v1/analysis: save an already-priced analysis record
// directly, for clients that computed the price in an earlier call.
func (h *Handle) Analysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST only"})
		return
	}
	var req analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json: " + err.Error()})
		return
	}
	if req.UserID == "" || req.FishClass == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id and fish_class are required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	rec := store.NewAnalysisRecord(req.UserID, req.FishClass, req.Location, req.QtyCaptured, req.WeightKg, req.TotalPrice)
	id, err := h.analyses.Insert(ctx, rec)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "Analysis data saved successfully",
		"inserted_id": id,
	})
}
