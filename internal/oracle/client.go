// Package oracle is the request/response boundary to the external AI
// analysis and ingestion collaborator. The core never sees the model's
// reasoning; it consumes trust scores, verdicts, and structured payloads,
// normalized with safe defaults before they enter the feed store.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/model"
)

// Client talks to the OmniTruth analysis gateway over JSON/HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a gateway client. timeout bounds every call; long-latency
// analysis requests that exceed it degrade to fallback values upstream.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchTrendingPosts returns a batch of trending posts used to seed the feed
// store. Returned posts are normalized: neutral crowd score, no vote history.
func (c *Client) FetchTrendingPosts(ctx context.Context) ([]model.Post, error) {
	var raw []rawPost
	if err := c.post(ctx, "/v1/trending", struct{}{}, &raw); err != nil {
		return nil, fmt.Errorf("fetch trending: %w", err)
	}
	return normalizePosts(raw, "trend"), nil
}

// AnalyzeTextDeeply requests a deep multi-layer analysis of the given text.
// Absent or malformed fields in the response are replaced with neutral
// defaults rather than surfacing a parse failure.
func (c *Client) AnalyzeTextDeeply(ctx context.Context, text string, contextType model.ContextType) (model.DeepAnalysisResult, error) {
	req := analyzeRequest{Text: text, ContextType: string(contextType)}

	var raw rawAnalysis
	if err := c.post(ctx, "/v1/analyze", req, &raw); err != nil {
		return model.DeepAnalysisResult{}, fmt.Errorf("analyze text: %w", err)
	}
	return normalizeAnalysis(raw), nil
}

// GlobalSearch asks the collaborator for posts matching the query and
// filters. Results arrive pre-populated with a neutral crowd score and an
// empty vote history.
func (c *Client) GlobalSearch(ctx context.Context, query string, filters model.SearchFilters) ([]model.Post, error) {
	req := searchRequest{Query: query, Filters: filters}

	var raw []rawPost
	if err := c.post(ctx, "/v1/search", req, &raw); err != nil {
		return nil, fmt.Errorf("global search: %w", err)
	}
	return normalizePosts(raw, "search"), nil
}

type analyzeRequest struct {
	Text        string `json:"text"`
	ContextType string `json:"contextType"`
}

type searchRequest struct {
	Query   string              `json:"query"`
	Filters model.SearchFilters `json:"filters"`
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: status %d: %s", path, resp.StatusCode, bytes.TrimSpace(data))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
