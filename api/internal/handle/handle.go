package handle

import (
	"context"
	"encoding/json"
	"net/http"

	"fish-price-api/api/internal/classify"
	"fish-price-api/api/internal/heatmap"
	"fish-price-api/api/internal/pricing"
	"fish-price-api/api/internal/store"
)

// AnalysisStore is the slice of the store the handlers need.
type AnalysisStore interface {
	Insert(ctx context.Context, rec store.AnalysisRecord) (string, error)
}

type Handle struct {
	pipeline   *pricing.Pipeline
	analyses   AnalysisStore
	classifier classify.Engine
	heatmap    *heatmap.Client
}

func New(pipeline *pricing.Pipeline, analyses AnalysisStore, classifier classify.Engine, hm *heatmap.Client) *Handle {
	return &Handle{
		pipeline:   pipeline,
		analyses:   analyses,
		classifier: classifier,
		heatmap:    hm,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
