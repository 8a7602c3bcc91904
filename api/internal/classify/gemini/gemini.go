package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"fish-price-api/api/internal/classify"
	"fish-price-api/api/internal/util"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string { return "gemini" }

const system = `You identify a fish species from a single PHOTO of a catch.
Return STRICT JSON:
{
  "species": string,     // common market name, e.g. "Pomfret"; "" if no fish visible
  "confidence": number,  // 0..1
  "note": string         // short remark when uncertain, else ""
}
Use the most common Indian market name for the species. Output ONLY JSON.`

// Classify sends the image to Gemini and decodes the strict-JSON answer.
func (e *Engine) Classify(ctx context.Context, image []byte, mime string) (classify.Result, error) {
	if e.APIKey == "" {
		return classify.Result{}, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return classify.Result{}, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return classify.Result{}, fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	parts := []genai.Part{
		genai.Text("Identify the fish species. Answer strictly in JSON."),
		&genai.Blob{MIMEType: mime, Data: image},
	}

	// Retries for transient 5xx-style failures.
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := m.GenerateContent(ctx, parts...)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt) * 300 * time.Millisecond)
			continue
		}
		txt := firstText(resp)
		if txt == "" {
			return classify.Result{}, fmt.Errorf("gemini classify: empty response")
		}
		txt = util.StripCodeFences(strings.TrimSpace(txt))

		var out classify.Result
		if err := json.Unmarshal([]byte(txt), &out); err != nil {
			return classify.Result{}, fmt.Errorf("gemini classify: bad JSON: %w", err)
		}
		return out, nil
	}
	return classify.Result{}, lastErr
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
