package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/wtmaxim/ocr-vision/internal/preprocess"
	"github.com/wtmaxim/ocr-vision/internal/submit"
)

// ocrclient preprocesses a local image or PDF and submits it to the API:
// PDFs are rasterized page by page, every page is downsized and
// re-encoded as JPEG, then the batch is posted as one multipart form.
func main() {
	var (
		server  = flag.String("server", "http://localhost:8000", "API base URL")
		lang    = flag.String("lang", "auto", "target language code, or auto")
		format  = flag.String("format", "markdown", "output format: markdown or json")
		pages   = flag.String("pages", "all", "PDF pages: all | firstPage | lastPage | 3 | 1,3,5 | 2-4")
		scale   = flag.Float64("scale", 1.5, "PDF render scale (1.0 = 72 DPI)")
		preview = flag.String("preview", "", "write a first-page preview JPEG to this path and exit")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: ocrclient [flags] <file.jpg|file.png|file.pdf>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("cannot read %s: %v", path, err)
	}

	ctx := context.Background()

	if *preview != "" {
		writePreview(ctx, path, data, *preview, *scale)
		return
	}

	images, err := preparePages(ctx, path, data, *pages, *scale)
	if err != nil {
		log.Fatalf("preprocessing failed: %v", err)
	}

	log.Printf("OCR_SUBMIT pages=%d lang=%s format=%s", len(images), *lang, *format)

	resp, err := submit.Submit(ctx, *server, submit.Request{
		Images:     images,
		TargetLang: *lang,
		Format:     *format,
	})
	if err != nil {
		log.Fatalf("submission failed: %v", err)
	}
	if resp.StatusCode != 200 {
		log.Fatalf("server returned %d: %s", resp.StatusCode, resp.Body)
	}

	os.Stdout.Write(resp.Body)
}

// preparePages turns the input file into the ordered, compressed page
// set. A rasterization failure here is fatal: the submission aborts.
func preparePages(ctx context.Context, path string, data []byte, pages string, scale float64) ([]preprocess.Image, error) {
	if preprocess.IsPDF(data) {
		if err := preprocess.MustHaveBinaries(); err != nil {
			return nil, err
		}
		sel, err := preprocess.ParsePageSelection(pages)
		if err != nil {
			return nil, err
		}
		rendered, err := preprocess.RenderPDF(ctx, path, sel, scale)
		if err != nil {
			return nil, err
		}
		compressed := make([]preprocess.Image, 0, len(rendered))
		for _, page := range rendered {
			compressed = append(compressed, preprocess.CompressImage(page.Data, page.MIME, preprocess.MaxSubmitDim))
		}
		return compressed, nil
	}

	mime := sniffImageMIME(data)
	if mime == "" {
		return nil, fmt.Errorf("unsupported file type (expected JPEG, PNG or PDF)")
	}
	return []preprocess.Image{preprocess.CompressImage(data, mime, preprocess.MaxSubmitDim)}, nil
}

// writePreview renders only the first page at the preview resolution.
// Rasterization failures are non-fatal here: a stale or missing preview
// is acceptable.
func writePreview(ctx context.Context, path string, data []byte, dest string, scale float64) {
	var img preprocess.Image

	if preprocess.IsPDF(data) {
		rendered, err := preprocess.RenderPDF(ctx, path, preprocess.FirstPage(), scale)
		if err != nil {
			log.Printf("preview rasterization failed, skipping: %v", err)
			return
		}
		img = preprocess.CompressImage(rendered[0].Data, rendered[0].MIME, preprocess.MaxPreviewDim)
	} else {
		mime := sniffImageMIME(data)
		if mime == "" {
			log.Printf("preview skipped: unsupported file type")
			return
		}
		img = preprocess.CompressImage(data, mime, preprocess.MaxPreviewDim)
	}

	if err := os.WriteFile(dest, img.Data, 0o644); err != nil {
		log.Fatalf("cannot write preview: %v", err)
	}
	log.Printf("preview written to %s (%d bytes)", dest, len(img.Data))
}

func sniffImageMIME(data []byte) string {
	switch {
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return "image/jpeg"
	case len(data) >= 8 && string(data[:8]) == "\x89PNG\r\n\x1a\n":
		return "image/png"
	default:
		return ""
	}
}
