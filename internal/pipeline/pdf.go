package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	pdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrMalformedInput marks the one fatal failure class: input that
// cannot be decoded at all. Everything else surfaces as diagnostics.
var ErrMalformedInput = errors.New("malformed input")

// PDFPage is one decoded page: its plain text for section detection
// and a TableSource for row extraction.
type PDFPage struct {
	Number int
	Text   string
	Table  TableSource
}

type PDFDocument struct {
	Pages []PDFPage
}

// OpenPDF decodes BOM PDF bytes. pdfcpu's relaxed structural check
// runs first so a broken file fails fast instead of yielding garbage
// rows downstream.
func OpenPDF(content []byte) (*PDFDocument, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadContext(bytes.NewReader(content), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	doc := &PDFDocument{}
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			text = ""
		}
		doc.Pages = append(doc.Pages, PDFPage{
			Number: i,
			Text:   text,
			Table:  NewGeometryTable(p.Content().Text),
		})
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("%w: pdf has no readable pages", ErrMalformedInput)
	}
	return doc, nil
}

func OpenPDFFile(path string) (*PDFDocument, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return OpenPDF(blob)
}
