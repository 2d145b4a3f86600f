package submit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/wtmaxim/ocr-vision/internal/config"
	"github.com/wtmaxim/ocr-vision/internal/preprocess"
)

// Request is one OCR submission: the preprocessed page images in page
// order plus the extraction options.
type Request struct {
	Images     []preprocess.Image
	TargetLang string // defaults to "auto"
	Format     string // defaults to "markdown"
}

// Response is the raw server reply.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// BuildForm assembles the multipart body. A single image goes under the
// "file" field; multiple images under repeated "files[]" fields, page
// order preserved.
func BuildForm(req Request) (*bytes.Buffer, string, error) {
	if len(req.Images) == 0 {
		return nil, "", fmt.Errorf("no images to submit")
	}

	var total int
	for _, img := range req.Images {
		total += len(img.Data)
	}
	if total > config.MaxUploadBytes {
		return nil, "", fmt.Errorf(
			"payload is %.2f MB, the server limit is 4MB", float64(total)/(1024*1024),
		)
	}

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	field := "file"
	if len(req.Images) > 1 {
		field = "files[]"
	}
	for i, img := range req.Images {
		// CreateFormFile would declare application/octet-stream; the
		// server validates the per-part MIME so set it explicitly.
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", fmt.Sprintf(
			`form-data; name=%q; filename="page-%d.jpg"`, field, i+1,
		))
		hdr.Set("Content-Type", img.MIME)
		part, err := w.CreatePart(hdr)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", err
		}
	}

	lang := req.TargetLang
	if lang == "" {
		lang = "auto"
	}
	if err := w.WriteField("targetLang", lang); err != nil {
		return nil, "", err
	}
	format := req.Format
	if format == "" {
		format = "markdown"
	}
	if err := w.WriteField("format", format); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}

// Submit posts the assembled form to the server's /api/ocr endpoint.
func Submit(ctx context.Context, serverURL string, req Request) (*Response, error) {
	body, contentType, err := BuildForm(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		serverURL+"/api/ocr",
		body,
	)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", contentType)

	client := &http.Client{Timeout: 120 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("submission failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        raw,
	}, nil
}
