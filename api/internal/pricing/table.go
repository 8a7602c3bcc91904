// Package pricing holds the reference price table and the pipeline that
// turns a catch query into a priced, recorded analysis.
package pricing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrPriceNotFound covers both "no row matched" and "matched row has an
// unusable price field" — a malformed reference row must never fail a request.
var ErrPriceNotFound = errors.New("no matching price row")

// PriceType is the market channel a price was observed in.
type PriceType string

const (
	Retail PriceType = "Retail"
	FH     PriceType = "FH"
	FLC    PriceType = "FLC"
)

// ParsePriceType validates a request-supplied price type.
func ParsePriceType(s string) (PriceType, error) {
	switch PriceType(s) {
	case Retail, FH, FLC:
		return PriceType(s), nil
	}
	return "", fmt.Errorf("invalid price_type %q: choose from Retail, FH, FLC", s)
}

// priceTypeHeaderSynonym is the long-form header the reference CSV ships with.
const priceTypeHeaderSynonym = "Price Type(includes Retail,FH,FLC)"

const (
	colSpecies   = "Species"
	colState     = "State/UT"
	colPriceType = "PriceType"
	colAvgPrice  = "Average Price (Rs./Kg)"
)

type row struct {
	Species   string
	State     string
	PriceType string
	AvgPrice  string
}

// Table is the startup-loaded reference price dataset. It is never mutated
// after load and is safe for concurrent reads.
type Table struct {
	rows []row
}

// LoadTable reads the reference CSV once. Headers are trimmed and the known
// price-type header synonym is renamed to its canonical form.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("price CSV not found: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	idx := map[string]int{}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == priceTypeHeaderSynonym {
			h = colPriceType
		}
		idx[h] = i
	}
	for _, col := range []string{colSpecies, colState, colPriceType, colAvgPrice} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, col)
		}
	}

	t := &Table{}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) {
				continue
			}
			break
		}
		t.rows = append(t.rows, row{
			Species:   rec[idx[colSpecies]],
			State:     rec[idx[colState]],
			PriceType: rec[idx[colPriceType]],
			AvgPrice:  rec[idx[colAvgPrice]],
		})
	}
	return t, nil
}

// Len reports the number of reference rows.
func (t *Table) Len() int { return len(t.rows) }

// Lookup finds the average price for (species, state, priceType), matching all
// three keys case-insensitively. With duplicate rows the first in file order
// wins. The price field is parsed with thousands separators stripped and any
// fractional part truncated.
func (t *Table) Lookup(species, state string, priceType PriceType) (int64, error) {
	for _, rw := range t.rows {
		if !strings.EqualFold(strings.TrimSpace(rw.Species), species) ||
			!strings.EqualFold(strings.TrimSpace(rw.State), state) ||
			!strings.EqualFold(strings.TrimSpace(rw.PriceType), string(priceType)) {
			continue
		}
		raw := strings.TrimSpace(strings.ReplaceAll(rw.AvgPrice, ",", ""))
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, ErrPriceNotFound
		}
		return int64(v), nil
	}
	return 0, ErrPriceNotFound
}
