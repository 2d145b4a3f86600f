package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// Low temperature so repeated extractions of the same document stay
	// close to deterministic.
	extractionTemperature = 0.2

	extractionMaxTokens = 4096
)

// VisionClient talks to an OpenAI-compatible chat completions endpoint
// (Together AI, OpenRouter). One instance serves every request for the
// process lifetime.
type VisionClient struct {
	provider string
	apiKey   string
	baseURL  string
	model    string
	client   *http.Client
}

var _ Client = (*VisionClient)(nil)

// NewVisionClient builds the provider client. httpClient may be nil, in
// which case a 60s-timeout client is used.
func NewVisionClient(provider, apiKey, baseURL, model string, httpClient *http.Client) *VisionClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &VisionClient{
		provider: provider,
		apiKey:   apiKey,
		baseURL:  baseURL,
		model:    model,
		client:   httpClient,
	}
}

func (v *VisionClient) Model() string { return v.model }

// Request/response shapes for the chat completions API.

type chatContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string for system, []chatContentPart for user
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Extract sends every page image in one completion call and returns the
// raw model text. No retry: each request is user-triggered and single-shot.
func (v *VisionClient) Extract(ctx context.Context, images []ImageData, opts ExtractOptions) (string, error) {
	if v.apiKey == "" {
		return "", errors.New("missing provider API key")
	}
	if len(images) == 0 {
		return "", errors.New("no images to extract")
	}

	parts := make([]chatContentPart, 0, len(images)+1)
	parts = append(parts, chatContentPart{
		Type: "text",
		Text: BuildUserInstruction(opts.TargetLang, opts.Format),
	})
	for _, img := range images {
		parts = append(parts, chatContentPart{
			Type:     "image_url",
			ImageURL: &chatImageURL{URL: img.DataURL},
		})
	}

	payload := chatRequest{
		Model: v.model,
		Messages: []chatMessage{
			{Role: "system", Content: BuildSystemPrompt(opts.TargetLang, opts.Format)},
			{Role: "user", Content: parts},
		},
		Temperature: extractionTemperature,
		MaxTokens:   extractionMaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		v.baseURL+"/chat/completions",
		bytes.NewBuffer(body),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+v.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return "", &ProviderError{
			Name:    v.provider,
			Message: "request failed",
			Cause:   err,
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{
			Name:    v.provider,
			Message: "failed to read response",
			Cause:   err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{
			Name:         v.provider,
			Message:      fmt.Sprintf("api returned status %d", resp.StatusCode),
			StatusCode:   resp.StatusCode,
			ResponseBody: string(raw),
		}
	}

	var result chatResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", &ProviderError{
			Name:         v.provider,
			Message:      "invalid response body",
			ResponseBody: string(raw),
			Cause:        err,
		}
	}
	if result.Error != nil {
		return "", &ProviderError{
			Name:         v.provider,
			Message:      result.Error.Message,
			ResponseBody: string(raw),
		}
	}
	if len(result.Choices) == 0 {
		return "", &ProviderError{
			Name:         v.provider,
			Message:      "empty completion response",
			ResponseBody: string(raw),
		}
	}

	return result.Choices[0].Message.Content, nil
}
