package llm

import (
	"fmt"
	"log"
)

// ProviderError carries the loosely-typed diagnostics a provider failure
// can expose. All fields except Message are optional.
type ProviderError struct {
	Name         string // provider identifier, e.g. "together"
	Message      string
	StatusCode   int    // HTTP status from the provider, 0 if none
	ResponseBody string // raw response excerpt, "" if none
	Cause        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Name, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Cause }

// Log writes the structured diagnostic line for a provider failure.
func (e *ProviderError) Log() {
	log.Printf(
		"LLM_ERROR provider=%s status=%d message=%q response=%q cause=%v",
		e.Name, e.StatusCode, e.Message, truncate(e.ResponseBody, 512), e.Cause,
	)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
