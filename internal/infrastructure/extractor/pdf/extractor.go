package pdf

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	lpdf "github.com/ledongthuc/pdf"

	"github.com/kirillkom/resume-screener/internal/core/domain"
)

// Extractor reads the text layer of PDF files. Scanned pages without a text
// layer yield nothing; there is no OCR.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText concatenates page text in page order. Only a document that
// cannot be opened as a PDF is an error: unreadable pages contribute "".
func (e *Extractor) ExtractText(ctx context.Context, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = domain.WrapError(domain.ErrExtraction, "open pdf", fmt.Errorf("malformed document: %v", r))
		}
	}()

	f, reader, err := lpdf.Open(path)
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "open pdf", err)
	}
	defer f.Close()

	pages := reader.NumPage()
	var b strings.Builder
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if i > 1 {
			b.WriteByte('\n')
		}
		b.WriteString(pageText(reader, i))
	}
	return b.String(), nil
}

func pageText(reader *lpdf.Reader, index int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("pdf_page_unreadable", "page", index, "panic", fmt.Sprint(r))
			text = ""
		}
	}()

	page := reader.Page(index)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		slog.Warn("pdf_page_unreadable", "page", index, "error", err)
		return ""
	}
	return text
}
