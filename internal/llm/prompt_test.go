package llm

import (
	"strings"
	"testing"
)

const noTranslateDirective = "Do not translate"

func TestSystemPrompt_AutoKeepsOriginalLanguage(t *testing.T) {
	for _, format := range []string{FormatMarkdown, FormatJSON} {
		prompt := BuildSystemPrompt(LangAuto, format)
		if !strings.Contains(prompt, noTranslateDirective) {
			t.Errorf("format %s: auto prompt missing no-translation directive", format)
		}
		if strings.Contains(prompt, "Translate ALL") {
			t.Errorf("format %s: auto prompt must not ask for translation", format)
		}
	}
}

func TestSystemPrompt_ExplicitLanguageTranslates(t *testing.T) {
	prompt := BuildSystemPrompt("fr", FormatMarkdown)

	if !strings.Contains(prompt, `"fr"`) {
		t.Error("prompt does not name the target language")
	}
	if !strings.Contains(prompt, "Translate ALL") {
		t.Error("prompt missing translation directive")
	}
	if strings.Contains(prompt, noTranslateDirective) {
		t.Error("translation prompt must not carry the no-translation directive")
	}
}

func TestSystemPrompt_MarkdownBranch(t *testing.T) {
	prompt := BuildSystemPrompt(LangAuto, FormatMarkdown)

	for _, want := range []string{"Markdown tables", "Markdown lists", "reading order", unreadableMark} {
		if !strings.Contains(prompt, want) {
			t.Errorf("markdown prompt missing %q", want)
		}
	}
}

func TestSystemPrompt_JSONBranch(t *testing.T) {
	prompt := BuildSystemPrompt(LangAuto, FormatJSON)

	for _, want := range []string{"valid JSON", "documentType", "fullText", "ISO 8601", "Omit fields"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("json prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, unreadableMark) {
		t.Error("json prompt should not carry the markdown sentinel")
	}
}

func TestSystemPrompt_Deterministic(t *testing.T) {
	a := BuildSystemPrompt("de", FormatJSON)
	b := BuildSystemPrompt("de", FormatJSON)
	if a != b {
		t.Error("prompt construction is not deterministic")
	}
}

func TestUserInstruction_RestatesFormat(t *testing.T) {
	md := BuildUserInstruction(LangAuto, FormatMarkdown)
	js := BuildUserInstruction(LangAuto, FormatJSON)

	if !strings.Contains(md, "Markdown") {
		t.Error("markdown instruction missing format")
	}
	if !strings.Contains(js, "JSON") {
		t.Error("json instruction missing format")
	}
	if !strings.Contains(md, noTranslateDirective) {
		t.Error("instruction missing language directive")
	}
}
