package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"fish-price-api/api/internal/geo"
	"fish-price-api/api/internal/pricing"
	"fish-price-api/api/internal/store"
)

const testCSV = `Species,State/UT,"Price Type(includes Retail,FH,FLC)","Average Price (Rs./Kg)"
Pomfret,Maharashtra,Retail,"500"
`

type stubResolver struct {
	state string
	err   error
}

func (s stubResolver) Resolve(ctx context.Context, lat, lon float64) (string, error) {
	return s.state, s.err
}

type stubStore struct {
	id      string
	err     error
	inserts int
}

func (s *stubStore) Insert(ctx context.Context, rec store.AnalysisRecord) (string, error) {
	s.inserts++
	if s.err != nil {
		return "", s.err
	}
	return s.id, nil
}

func (s *stubStore) Record(ctx context.Context, userID, species string, loc pricing.Location, qty int, weightKg, totalPrice float64) (string, error) {
	return s.Insert(ctx, store.NewAnalysisRecord(userID, species, loc, qty, weightKg, totalPrice))
}

func newTestHandle(t *testing.T, resolver stubResolver, st *stubStore) *Handle {
	t.Helper()
	p := filepath.Join(t.TempDir(), "prices.csv")
	if err := os.WriteFile(p, []byte(testCSV), 0644); err != nil {
		t.Fatal(err)
	}
	table, err := pricing.LoadTable(p)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	pipeline := pricing.NewPipeline(resolver, table, st)
	return New(pipeline, st, nil, nil)
}

func TestPriceHandler(t *testing.T) {
	st := &stubStore{id: "abc-123"}
	h := newTestHandle(t, stubResolver{state: "Maharashtra"}, st)

	req := httptest.NewRequest(http.MethodGet,
		"/v1/price?species=Pomfret&weight_kg=2&lat=19.0&lon=72.8&price_type=Retail&user_id=u1&qty_captured=4", nil)
	w := httptest.NewRecorder()
	h.Price(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Species    string  `json:"species"`
		State      string  `json:"state"`
		PriceType  string  `json:"price_type"`
		WeightKg   float64 `json:"weight_kg"`
		AvgPrice   float64 `json:"avg_price"`
		TotalPrice float64 `json:"total_price"`
		InsertedID string  `json:"inserted_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.State != "Maharashtra" || resp.AvgPrice != 500 || resp.TotalPrice != 1000 {
		t.Errorf("response = %+v", resp)
	}
	if resp.InsertedID == "" {
		t.Error("inserted_id must be non-empty")
	}
	if st.inserts != 1 {
		t.Errorf("inserts = %d", st.inserts)
	}
}

func TestPriceHandlerValidation(t *testing.T) {
	st := &stubStore{id: "abc-123"}
	h := newTestHandle(t, stubResolver{state: "Maharashtra"}, st)

	cases := []struct {
		name  string
		query string
	}{
		{"missing species", "weight_kg=2&lat=19&lon=72.8&price_type=Retail&user_id=u&qty_captured=1"},
		{"zero weight", "species=Pomfret&weight_kg=0&lat=19&lon=72.8&price_type=Retail&user_id=u&qty_captured=1"},
		{"negative weight", "species=Pomfret&weight_kg=-1&lat=19&lon=72.8&price_type=Retail&user_id=u&qty_captured=1"},
		{"bad lat", "species=Pomfret&weight_kg=2&lat=95&lon=72.8&price_type=Retail&user_id=u&qty_captured=1"},
		{"bad price type", "species=Pomfret&weight_kg=2&lat=19&lon=72.8&price_type=Wholesale&user_id=u&qty_captured=1"},
		{"missing user", "species=Pomfret&weight_kg=2&lat=19&lon=72.8&price_type=Retail&qty_captured=1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/price?"+c.query, nil)
			w := httptest.NewRecorder()
			h.Price(w, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
	if st.inserts != 0 {
		t.Errorf("inserts = %d, want 0", st.inserts)
	}
}

func TestPriceHandlerRegionUnresolved(t *testing.T) {
	st := &stubStore{id: "abc-123"}
	// Resolver falls through both geocoder and bounds.
	h := newTestHandle(t, stubResolver{err: geo.ErrRegionUnresolved}, st)

	req := httptest.NewRequest(http.MethodGet,
		"/v1/price?species=Pomfret&weight_kg=2&lat=48.8&lon=2.3&price_type=Retail&user_id=u&qty_captured=1", nil)
	w := httptest.NewRecorder()
	h.Price(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if st.inserts != 0 {
		t.Error("no persistence call expected")
	}
}

func TestPriceHandlerPriceUnavailable(t *testing.T) {
	st := &stubStore{id: "abc-123"}
	h := newTestHandle(t, stubResolver{state: "Kerala"}, st)

	req := httptest.NewRequest(http.MethodGet,
		"/v1/price?species=Pomfret&weight_kg=2&lat=9.9&lon=76.2&price_type=Retail&user_id=u&qty_captured=1", nil)
	w := httptest.NewRecorder()
	h.Price(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if st.inserts != 0 {
		t.Error("no persistence call expected")
	}
}

func TestPriceHandlerPersistenceFailure(t *testing.T) {
	st := &stubStore{err: errors.New("db down")}
	h := newTestHandle(t, stubResolver{state: "Maharashtra"}, st)

	req := httptest.NewRequest(http.MethodGet,
		"/v1/price?species=Pomfret&weight_kg=2&lat=19&lon=72.8&price_type=Retail&user_id=u&qty_captured=1", nil)
	w := httptest.NewRecorder()
	h.Price(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
