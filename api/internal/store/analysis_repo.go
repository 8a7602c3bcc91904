package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fish-price-api/api/internal/pricing"
)

var ErrNotFound = sql.ErrNoRows

// AnalysisRecord is one persisted catch analysis. CreatedAt is fixed at
// construction time, never at insert time, so a retried insert reuses the
// same record instead of skewing the timestamp.
type AnalysisRecord struct {
	ID          string           `json:"id,omitempty"`
	UserID      string           `json:"user_id"`
	FishClass   string           `json:"fish_class"`
	Location    pricing.Location `json:"location"`
	QtyCaptured int              `json:"qty_captured"`
	TotalPrice  float64          `json:"total_price"`
	WeightKg    float64          `json:"weight_kg"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NewAnalysisRecord builds a record with the creation timestamp captured now,
// in UTC. The id stays empty until the repo assigns one on insert.
func NewAnalysisRecord(userID, fishClass string, loc pricing.Location, qty int, weightKg, totalPrice float64) AnalysisRecord {
	return AnalysisRecord{
		UserID:      userID,
		FishClass:   fishClass,
		Location:    loc,
		QtyCaptured: qty,
		TotalPrice:  totalPrice,
		WeightKg:    weightKg,
		CreatedAt:   time.Now().UTC(),
	}
}

type AnalysisRepo struct{ DB *sql.DB }

func NewAnalysisRepo(db *sql.DB) *AnalysisRepo { return &AnalysisRepo{DB: db} }

// Insert writes one record and returns the generated id. One durable write
// per call; there is no idempotency key.
func (r *AnalysisRepo) Insert(ctx context.Context, rec AnalysisRecord) (string, error) {
	id := uuid.NewString()
	loc, err := json.Marshal(rec.Location)
	if err != nil {
		return "", fmt.Errorf("marshal location: %w", err)
	}
	const q = `
insert into analysis (id, user_id, fish_class, location, qty_captured, total_price, weight_kg, created_at)
values ($1,$2,$3,$4,$5,$6,$7,$8)`
	if _, err := r.DB.ExecContext(ctx, q,
		id, rec.UserID, rec.FishClass, loc, rec.QtyCaptured, rec.TotalPrice, rec.WeightKg, rec.CreatedAt,
	); err != nil {
		return "", err
	}
	return id, nil
}

// Record builds the record and inserts it; satisfies pricing.Recorder.
func (r *AnalysisRepo) Record(ctx context.Context, userID, species string, loc pricing.Location, qty int, weightKg, totalPrice float64) (string, error) {
	return r.Insert(ctx, NewAnalysisRecord(userID, species, loc, qty, weightKg, totalPrice))
}

// ListSince returns records created after t, oldest first. Used by the alert
// bot's poll loop and the catch-log view.
func (r *AnalysisRepo) ListSince(ctx context.Context, t time.Time) ([]AnalysisRecord, error) {
	const q = `
select id, user_id, fish_class, location, qty_captured, total_price, weight_kg, created_at
from analysis
where created_at > $1
order by created_at asc`
	rows, err := r.DB.QueryContext(ctx, q, t)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AnalysisRecord
	for rows.Next() {
		var (
			rec AnalysisRecord
			loc []byte
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.FishClass, &loc,
			&rec.QtyCaptured, &rec.TotalPrice, &rec.WeightKg, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(loc, &rec.Location); err != nil {
			// A broken location blob should not hide the record.
			rec.Location = pricing.Location{}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
