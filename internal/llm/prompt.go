package llm

import "fmt"

// Sentinel inserted by the model for content it cannot read.
const unreadableMark = "[unreadable]"

// languageDirective builds the translation instruction shared by both
// output formats. The "auto" wording and the translation wording have no
// phrase in common so the two branches stay distinguishable.
func languageDirective(targetLang string) string {
	if targetLang == "" || targetLang == LangAuto {
		return "Keep the original language of the document. Do not translate anything."
	}
	return fmt.Sprintf(
		"Translate ALL textual content into %q, including labels, headings and table headers. Never mix languages in the output.",
		targetLang,
	)
}

// BuildSystemPrompt builds the deterministic system prompt from the
// target language and the requested output format.
func BuildSystemPrompt(targetLang, format string) string {
	if format == FormatJSON {
		return buildJSONPrompt(targetLang)
	}
	return buildMarkdownPrompt(targetLang)
}

func buildMarkdownPrompt(targetLang string) string {
	return `You are an OCR engine that converts document images into clean Markdown.

Rules:
- Extract ALL visible text, preserving the reading order of the document.
- Render tables as Markdown tables.
- Render lists as Markdown lists.
- Use consistent heading levels for titles and sections.
- Mark any text you cannot read as ` + unreadableMark + `.
- Output ONLY the Markdown content. NO commentary, NO explanations.

` + languageDirective(targetLang)
}

func buildJSONPrompt(targetLang string) string {
	return `You are an OCR engine that converts document images into structured JSON.

Your output MUST be ONLY valid JSON. NO markdown, NO comments, NO extra text.

Suggested schema (adapt to the document, omit unknown fields instead of guessing):
{
  "documentType": "string",
  "language": "string",
  "title": "string",
  "fullText": "string",
  "keyValues": { "label": "value" },
  "sections": [ { "heading": "string", "text": "string" } ],
  "lists": [ [ "string" ] ],
  "tables": [ { "headers": ["string"], "rows": [["string"]] } ],
  "entities": { "names": [], "dates": [], "addresses": [] },
  "totals": { "subtotal": 0, "tax": 0, "total": 0 },
  "parties": [ { "role": "string", "name": "string" } ],
  "referenceNumbers": [ "string" ]
}

Rules:
- Omit fields you cannot find. Do NOT guess.
- Normalize dates to ISO 8601 (YYYY-MM-DD).
- Monetary amounts are bare numbers, without currency symbols.

` + languageDirective(targetLang)
}

// BuildUserInstruction restates the language and format directives in the
// user message that carries the page images.
func BuildUserInstruction(targetLang, format string) string {
	what := "Extract the content of the following document as Markdown."
	if format == FormatJSON {
		what = "Extract the content of the following document as a single JSON object."
	}
	return what + " " + languageDirective(targetLang)
}
