package pricing

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"fish-price-api/api/internal/geo"
	"fish-price-api/api/internal/logging"
)

// Query is one catch-pricing request.
type Query struct {
	Species   string
	WeightKg  float64
	Lat       float64
	Lon       float64
	PriceType PriceType
}

// Location is the capture coordinate handed to the recorder.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Result is the priced catch, state resolved and totals rounded.
type Result struct {
	Species    string    `json:"species"`
	State      string    `json:"state"`
	PriceType  PriceType `json:"price_type"`
	WeightKg   float64   `json:"weight_kg"`
	AvgPrice   float64   `json:"avg_price"`
	TotalPrice float64   `json:"total_price"`
}

// Outcome pairs the price result with the persisted record id. Either both
// are produced or neither is.
type Outcome struct {
	Result     Result
	InsertedID string
}

// PriceUnavailableError carries the three lookup keys so a data gap can be
// diagnosed from the error alone.
type PriceUnavailableError struct {
	Species   string
	State     string
	PriceType PriceType
}

func (e *PriceUnavailableError) Error() string {
	return fmt.Sprintf("no price found for %s in %s (%s)", e.Species, e.State, e.PriceType)
}

// Recorder persists one analysis record and returns its generated id.
type Recorder interface {
	Record(ctx context.Context, userID, species string, loc Location, qty int, weightKg, totalPrice float64) (string, error)
}

// Pipeline sequences resolve, lookup, compute and record, short-circuiting on
// the first failure. Collaborators are injected once at startup and shared by
// all requests.
type Pipeline struct {
	Regions  geo.Resolver
	Table    *Table
	Recorder Recorder
}

func NewPipeline(regions geo.Resolver, table *Table, recorder Recorder) *Pipeline {
	return &Pipeline{Regions: regions, Table: table, Recorder: recorder}
}

// PriceAndRecord runs the full pipeline. On any failure no record is written
// and no partial result is returned; a computed price is discarded if the
// subsequent insert fails.
func (p *Pipeline) PriceAndRecord(ctx context.Context, q Query, userID string, qty int) (Outcome, error) {
	state, err := p.Regions.Resolve(ctx, q.Lat, q.Lon)
	if err != nil {
		return Outcome{}, err
	}

	avg, err := p.Table.Lookup(q.Species, state, q.PriceType)
	if err != nil {
		if errors.Is(err, ErrPriceNotFound) {
			return Outcome{}, &PriceUnavailableError{Species: q.Species, State: state, PriceType: q.PriceType}
		}
		return Outcome{}, fmt.Errorf("price lookup: %w", err)
	}

	br := Compute(avg, q.WeightKg)
	avgF, _ := br.AvgPrice.Float64()
	totalF, _ := br.TotalPrice.Float64()

	id, err := p.Recorder.Record(ctx, userID, q.Species, Location{Lat: q.Lat, Lon: q.Lon}, qty, q.WeightKg, totalF)
	if err != nil {
		return Outcome{}, fmt.Errorf("record analysis: %w", err)
	}

	logging.Logger.Info("catch priced",
		zap.String("species", q.Species),
		zap.String("state", state),
		zap.String("price_type", string(q.PriceType)),
		zap.Float64("total_price", totalF),
		zap.String("inserted_id", id))

	return Outcome{
		Result: Result{
			Species:    q.Species,
			State:      state,
			PriceType:  q.PriceType,
			WeightKg:   q.WeightKg,
			AvgPrice:   avgF,
			TotalPrice: totalF,
		},
		InsertedID: id,
	}, nil
}
