package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/wtmaxim/ocr-vision/internal/llm"
)

type Service struct {
	client llm.Client
}

func NewService(client llm.Client) *Service {
	return &Service{client: client}
}

// --------------------------------------------------
// Dispatch pages to the provider and normalize output
// --------------------------------------------------
func (s *Service) Extract(
	ctx context.Context,
	pages []PageImage,
	targetLang string,
	format string,
) (*Result, error) {

	if len(pages) == 0 {
		return nil, errors.New("no pages to extract")
	}
	if targetLang == "" {
		targetLang = llm.LangAuto
	}
	if format != llm.FormatJSON {
		format = llm.FormatMarkdown
	}

	// Images are encoded sequentially and sent as ONE batched call.
	images := make([]llm.ImageData, 0, len(pages))
	for _, page := range pages {
		images = append(images, llm.ImageData{
			DataURL: fmt.Sprintf(
				"data:%s;base64,%s",
				page.MIME,
				base64.StdEncoding.EncodeToString(page.Data),
			),
		})
	}

	log.Printf("OCR_DISPATCH pages=%d lang=%s format=%s", len(pages), targetLang, format)

	text, err := s.client.Extract(ctx, images, llm.ExtractOptions{
		TargetLang: targetLang,
		Format:     format,
	})
	if err != nil {
		var perr *llm.ProviderError
		if errors.As(err, &perr) {
			perr.Log()
		} else {
			log.Printf("LLM_ERROR message=%q", err.Error())
		}
		return nil, err
	}

	log.Printf("OCR_DONE format=%s text_length=%d", format, len(text))

	if format == llm.FormatJSON {
		return &Result{Format: format, JSON: normalizeJSON(text)}, nil
	}
	return &Result{Format: format, Markdown: text}, nil
}

// normalizeJSON guarantees callers always get a valid JSON value: the
// parsed model output when it complies, otherwise the raw text wrapped
// under a "content" key.
func normalizeJSON(text string) any {
	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return map[string]any{"content": text}
	}
	return value
}
