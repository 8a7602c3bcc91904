package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

type heatmapRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Heatmap handles POST /v1/heatmap/predict. The predictor client degrades to
// a constant fallback internally, so this endpoint always answers 200 for a
// well-formed request.
func (h *Handle) Heatmap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST only"})
		return
	}
	var req heatmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	writeJSON(w, http.StatusOK, h.heatmap.Predict(ctx, req.Latitude, req.Longitude))
}
