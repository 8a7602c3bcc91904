// Package heatmap proxies the remote fish-probability predictor. The remote
// endpoint is loosely typed: it answers with a bare number, a numeric string,
// a JSON object, or garbage. Responses are decoded into an explicit tagged
// value instead of duck-typed branching, and every failure degrades to a
// constant default probability rather than an error.
package heatmap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"fish-price-api/api/internal/logging"
)

// DefaultProbability is returned whenever the remote call fails or its
// payload cannot be interpreted.
const DefaultProbability = 75.0

type Prediction struct {
	Status          string  `json:"status"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	FishProbability float64 `json:"fish_probability"`
	Fallback        bool    `json:"fallback,omitempty"`
}

type valueKind int

const (
	kindUnparseable valueKind = iota
	kindNumber
	kindStructured
)

// remoteValue is the tagged decode of whatever the predictor sent back.
type remoteValue struct {
	kind        valueKind
	number      float64
	probability float64
}

func decodeRemoteValue(raw json.RawMessage) remoteValue {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return remoteValue{kind: kindNumber, number: n}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return remoteValue{kind: kindNumber, number: f}
		}
		// Some deployments answer with a JSON object serialized into a string.
		var nested struct {
			FishProbability *float64 `json:"fish_probability"`
		}
		if err := json.Unmarshal([]byte(s), &nested); err == nil && nested.FishProbability != nil {
			return remoteValue{kind: kindStructured, probability: *nested.FishProbability}
		}
		return remoteValue{kind: kindUnparseable}
	}

	var obj struct {
		FishProbability *float64 `json:"fish_probability"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.FishProbability != nil {
		return remoteValue{kind: kindStructured, probability: *obj.FishProbability}
	}
	return remoteValue{kind: kindUnparseable}
}

type Client struct {
	BaseURL string
	httpc   *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Predict asks the remote predictor for the fish probability at (lat, lon).
// It never returns an error: any remote failure yields the default value with
// Fallback set.
func (c *Client) Predict(ctx context.Context, lat, lon float64) Prediction {
	p, err := c.predict(ctx, lat, lon)
	if err != nil {
		logging.Logger.Warn("heatmap predictor failed, using fallback",
			zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		return Prediction{
			Status:          "success",
			Latitude:        lat,
			Longitude:       lon,
			FishProbability: DefaultProbability,
			Fallback:        true,
		}
	}
	return p
}

func (c *Client) predict(ctx context.Context, lat, lon float64) (Prediction, error) {
	body, _ := json.Marshal(map[string]any{"data": []float64{lat, lon}})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/predict", bytes.NewReader(body))
	if err != nil {
		return Prediction{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Prediction{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return Prediction{}, fmt.Errorf("heatmap %d: %s", resp.StatusCode, string(x))
	}

	var out struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Prediction{}, err
	}
	if len(out.Data) == 0 {
		return Prediction{}, fmt.Errorf("heatmap: empty data")
	}

	v := decodeRemoteValue(out.Data[0])
	switch v.kind {
	case kindNumber:
		return Prediction{Status: "success", Latitude: lat, Longitude: lon, FishProbability: v.number}, nil
	case kindStructured:
		return Prediction{Status: "success", Latitude: lat, Longitude: lon, FishProbability: v.probability}, nil
	default:
		return Prediction{}, fmt.Errorf("heatmap: unparseable response")
	}
}
