package preprocess

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// IsPDF reports whether data starts with the PDF magic bytes.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF"))
}

// Page selection kinds, mirroring the rasterizer contract:
// all | firstPage | lastPage | index | index list | range.
type selectionKind int

const (
	selectAll selectionKind = iota
	selectFirst
	selectLast
	selectList
	selectRange
)

// PageSelection names which pages of a PDF to rasterize. Page numbers
// are 1-based.
type PageSelection struct {
	kind  selectionKind
	list  []int
	first int
	last  int
}

func AllPages() PageSelection  { return PageSelection{kind: selectAll} }
func FirstPage() PageSelection { return PageSelection{kind: selectFirst} }
func LastPage() PageSelection  { return PageSelection{kind: selectLast} }

// ParsePageSelection parses "all", "firstPage", "lastPage", a single
// index ("3"), a comma list ("1,3,5") or a range ("2-4").
func ParsePageSelection(s string) (PageSelection, error) {
	switch strings.TrimSpace(s) {
	case "", "all":
		return AllPages(), nil
	case "firstPage":
		return FirstPage(), nil
	case "lastPage":
		return LastPage(), nil
	}

	s = strings.TrimSpace(s)
	if strings.Contains(s, "-") {
		parts := strings.SplitN(s, "-", 2)
		first, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		last, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil || first < 1 || last < first {
			return PageSelection{}, fmt.Errorf("invalid page range: %q", s)
		}
		return PageSelection{kind: selectRange, first: first, last: last}, nil
	}

	var list []int
	for _, field := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n < 1 {
			return PageSelection{}, fmt.Errorf("invalid page index: %q", field)
		}
		list = append(list, n)
	}
	return PageSelection{kind: selectList, list: list}, nil
}

// Pages expands the selection against the document's page count,
// clamping out-of-bounds indices.
func (p PageSelection) Pages(total int) []int {
	if total < 1 {
		return nil
	}
	switch p.kind {
	case selectFirst:
		return []int{1}
	case selectLast:
		return []int{total}
	case selectRange:
		last := p.last
		if last > total {
			last = total
		}
		var pages []int
		for n := p.first; n <= last; n++ {
			pages = append(pages, n)
		}
		return pages
	case selectList:
		var pages []int
		for _, n := range p.list {
			if n >= 1 && n <= total {
				pages = append(pages, n)
			}
		}
		return pages
	default:
		pages := make([]int, total)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}
}

// RenderPDF rasterizes the selected pages of a PDF to JPEG via the
// external pdftoppm binary, at 72*scale DPI. Pages are rendered
// sequentially so the returned order is the page order.
func RenderPDF(ctx context.Context, pdfPath string, sel PageSelection, scale float64) ([]Image, error) {
	if scale <= 0 {
		scale = 1.5
	}
	dpi := int(72 * scale)

	total, err := countPDFPages(ctx, pdfPath)
	if err != nil {
		return nil, err
	}

	workDir, err := os.MkdirTemp("", "ocr-render-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(workDir)

	var images []Image
	for _, page := range sel.Pages(total) {
		path, err := renderSinglePage(ctx, pdfPath, workDir, page, dpi)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		images = append(images, Image{Data: data, MIME: "image/jpeg"})
	}
	if len(images) == 0 {
		return nil, errors.New("no pages selected")
	}
	return images, nil
}

func renderSinglePage(ctx context.Context, pdfPath, workDir string, page, dpi int) (string, error) {
	prefix := filepath.Join(workDir, fmt.Sprintf("p%d", page))
	args := []string{
		"-jpeg",
		"-r", strconv.Itoa(dpi),
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
		pdfPath,
		prefix,
	}
	cmd := exec.CommandContext(ctx, "pdftoppm", args...)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftoppm failed on page %d: %w", page, err)
	}
	return findRenderedImage(prefix, page)
}

// pdftoppm zero-pads the page number depending on the page count, so
// probe the known widths before falling back to a glob.
func findRenderedImage(prefix string, page int) (string, error) {
	for width := 1; width <= 6; width++ {
		candidate := fmt.Sprintf("%s-%0*d.jpg", prefix, width, page)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	matches, err := filepath.Glob(prefix + "-*.jpg")
	if err != nil {
		return "", err
	}
	if len(matches) > 0 {
		return matches[0], nil
	}
	return "", fmt.Errorf("rendered image not found for page %d", page)
}

func countPDFPages(ctx context.Context, pdfPath string) (int, error) {
	cmd := exec.CommandContext(ctx, "pdfinfo", pdfPath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("pdfinfo failed: %w", err)
	}
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "Pages:") {
			parts := strings.Fields(line)
			if len(parts) >= 2 {
				if total, convErr := strconv.Atoi(parts[1]); convErr == nil {
					return total, nil
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return 0, errors.New("failed to determine page count from pdfinfo output")
}

// MustHaveBinaries fails fast when the poppler tools the PDF path
// depends on are not installed.
func MustHaveBinaries() error {
	for _, name := range []string{"pdftoppm", "pdfinfo"} {
		if _, err := exec.LookPath(name); err != nil {
			return fmt.Errorf("required binary missing: %s", name)
		}
	}
	return nil
}
