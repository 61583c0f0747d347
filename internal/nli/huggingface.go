package nli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/nli-prover/internal/model"
	"github.com/ppiankov/nli-prover/internal/util"
)

const defaultHuggingFaceURL = "https://router.huggingface.co/hf-inference/models"

// HuggingFaceBackend calls a text-classification endpoint serving an NLI
// model such as facebook/bart-large-mnli
type HuggingFaceBackend struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	config     model.NLIConfig
}

type hfRequest struct {
	Inputs hfPair `json:"inputs"`
}

type hfPair struct {
	Text     string `json:"text"`
	TextPair string `json:"text_pair"`
}

type hfLabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type hfError struct {
	Error string `json:"error"`
}

// NewHuggingFaceBackend creates a new Hugging Face backend. The endpoint is
// <base_url>/<model>.
func NewHuggingFaceBackend(cfg model.NLIConfig, httpCfg model.HTTPConfig) (*HuggingFaceBackend, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: huggingface model must be specified (e.g., facebook/bart-large-mnli)", ErrModelUnavailable)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultHuggingFaceURL
	}

	return &HuggingFaceBackend{
		endpoint:   strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(cfg.Model, "/"),
		apiKey:     cfg.APIKey,
		httpClient: util.NewHTTPClient(timeoutOf(cfg, 60*time.Second), httpCfg),
		config:     cfg,
	}, nil
}

// Name returns the provider name
func (b *HuggingFaceBackend) Name() string {
	return "huggingface"
}

// IsAvailable runs one tiny classification; the inference API has no
// cheaper health endpoint
func (b *HuggingFaceBackend) IsAvailable(ctx context.Context) bool {
	_, err := b.Classify(ctx, "A cat sleeps.", "An animal sleeps.")
	return err == nil
}

// Classify scores the pair with the hosted model
func (b *HuggingFaceBackend) Classify(ctx context.Context, premise, hypothesis string) (map[string]float64, error) {
	body, err := json.Marshal(hfRequest{Inputs: hfPair{Text: premise, TextPair: hypothesis}})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if b.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+b.apiKey)
	}

	httpResp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		var apiErr hfError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("API error (%d): %s", httpResp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("API error (%d): %s", httpResp.StatusCode, string(respBody))
	}

	labels, err := decodeLabelScores(respBody)
	if err != nil {
		return nil, err
	}

	raw := make(map[string]float64, len(labels))
	for _, ls := range labels {
		raw[ls.Label] = ls.Score
	}

	return normalizeLabels(raw, b.config.LabelMap), nil
}

// decodeLabelScores accepts both the flat [{label,score}] shape and the
// batched [[{label,score}]] shape
func decodeLabelScores(body []byte) ([]hfLabelScore, error) {
	var flat []hfLabelScore
	if err := json.Unmarshal(body, &flat); err == nil {
		if len(flat) == 0 {
			return nil, fmt.Errorf("empty classification response")
		}
		return flat, nil
	}

	var nested [][]hfLabelScore
	if err := json.Unmarshal(body, &nested); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(nested) == 0 || len(nested[0]) == 0 {
		return nil, fmt.Errorf("empty classification response")
	}
	return nested[0], nil
}
