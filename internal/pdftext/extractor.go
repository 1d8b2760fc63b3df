// Package pdftext reads the embedded text layer out of PDF files. It does
// no OCR: an image-only document yields an empty text result that the
// caller flags for review.
package pdftext

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/markma27/pdfsaver/internal/common"
)

// hasTextThreshold is the minimum number of non-whitespace-trimmed text
// bytes for a document to count as having a usable text layer.
const hasTextThreshold = 50

// Config holds extraction limits.
type Config struct {
	// MaxPages caps how many pages are read; classification keywords
	// almost always sit on the first page or two.
	MaxPages int
	// MaxFileSize rejects files larger than this many bytes.
	MaxFileSize int64
	// Validate runs a relaxed pdfcpu structural validation before the
	// file is opened for extraction.
	Validate bool
}

// DefaultConfig returns the default extraction limits.
func DefaultConfig() Config {
	return Config{
		MaxPages:    2,
		MaxFileSize: 100 * 1024 * 1024,
	}
}

// Document is the extracted text of one PDF file.
type Document struct {
	Path      string
	Text      string
	Pages     int
	PagesRead int
	HasText   bool
}

// Extractor extracts text from PDF files under configured limits. It holds
// no state and is safe for concurrent use.
type Extractor struct {
	cfg Config
}

// NewExtractor creates an extractor, filling zero config fields with
// defaults.
func NewExtractor(cfg Config) *Extractor {
	defaults := DefaultConfig()
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaults.MaxPages
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = defaults.MaxFileSize
	}
	return &Extractor{cfg: cfg}
}

// ExtractFile reads the text layer of the PDF at path, up to the
// configured page limit. A page that fails to decode is skipped with a
// warning; only file-level problems return an error.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*Document, error) {
	if err := e.validate(path); err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrNotPDF, path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close pdf", "path", path, "error", closeErr)
		}
	}()

	totalPages := reader.NumPage()
	limit := totalPages
	if limit > e.cfg.MaxPages {
		limit = e.cfg.MaxPages
	}

	var sb strings.Builder
	pagesRead := 0
	for pageNum := 1; pageNum <= limit; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, ok := readPage(reader, pageNum)
		if !ok {
			slog.Warn("skipping unreadable page", "path", path, "page", pageNum)
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
		pagesRead++
	}

	text := sb.String()
	return &Document{
		Path:      path,
		Text:      text,
		Pages:     totalPages,
		PagesRead: pagesRead,
		HasText:   len(strings.TrimSpace(text)) >= hasTextThreshold,
	}, nil
}

// readPage extracts one page's plain text. The pdf library panics on some
// malformed content streams, so the read runs under a recover boundary.
func readPage(reader *pdf.Reader, pageNum int) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			text, ok = "", false
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return "", false
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return "", false
	}
	return content, true
}

// validate checks the path before extraction: a regular .pdf file within
// the size limit, optionally structurally validated by pdfcpu.
func (e *Extractor) validate(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", common.ErrNotPDF)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", common.ErrNotPDF, path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return fmt.Errorf("%w: %s", common.ErrNotPDF, path)
	}
	if info.Size() > e.cfg.MaxFileSize {
		return fmt.Errorf("%w: %s is %d bytes (max %d)", common.ErrFileTooLarge, path, info.Size(), e.cfg.MaxFileSize)
	}

	if e.cfg.Validate {
		conf := pdfcpumodel.NewDefaultConfiguration()
		conf.ValidationMode = pdfcpumodel.ValidationRelaxed
		if err := api.ValidateFile(path, conf); err != nil {
			return fmt.Errorf("%w: %s: %v", common.ErrNotPDF, path, err)
		}
	}

	return nil
}
