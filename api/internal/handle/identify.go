package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fish-price-api/api/internal/util"
)

type identifyRequest struct {
	ImageB64 string `json:"image_b64"`
	Mime     string `json:"mime,omitempty"`
}

// Identify handles POST /v1/identify: forward the image to the species
// classifier and return its label verbatim.
func (h *Handle) Identify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST only"})
		return
	}
	var req identifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json: " + err.Error()})
		return
	}

	img, hintMIME, err := util.DecodeBase64MaybeDataURL(req.ImageB64)
	if err != nil || len(img) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad image_b64"})
		return
	}
	mime := util.PickMIME(req.Mime, hintMIME, img)

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	out, err := h.classifier.Classify(ctx, img, mime)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "classify error: " + err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, out)
}
