package llm

import (
	"context"
)

// Output formats supported by the extraction pipeline.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// LangAuto keeps the document's original language (no translation).
const LangAuto = "auto"

// ImageData is one page image, already encoded as a data URL
// (data:<mime>;base64,<payload>).
type ImageData struct {
	DataURL string
}

// ExtractOptions control the prompt sent alongside the images.
type ExtractOptions struct {
	// TargetLang is an ISO-like language code, or "auto" to keep the
	// original language of the document.
	TargetLang string

	// Format is "markdown" or "json".
	Format string
}

// Client extracts document content from a batch of page images using a
// vision-capable model. One call covers the whole page set.
type Client interface {
	Extract(ctx context.Context, images []ImageData, opts ExtractOptions) (string, error)
}
