// Package classify defines the species-classifier boundary. The pipeline
// treats the returned species label as an opaque string used verbatim as the
// price-table lookup key.
package classify

import "context"

type Result struct {
	Species    string  `json:"species"`
	Confidence float64 `json:"confidence"`
	Note       string  `json:"note,omitempty"`
}

type Engine interface {
	Name() string
	Classify(ctx context.Context, image []byte, mime string) (Result, error)
}
