package ocr

// PageImage is one accepted upload, normalized from either the singular
// "file" field or a "files[]" entry.
type PageImage struct {
	Data []byte
	MIME string
}

// Result is the normalized provider output: Markdown text, or an
// arbitrary JSON value depending on the requested format.
type Result struct {
	Format   string
	Markdown string
	JSON     any
}
