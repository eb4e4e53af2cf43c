package formatter

import (
	"bytes"
	_ "embed"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"
)

var (
	//go:embed ttf/DejaVuSans.ttf
	dejaVuRegular []byte
	//go:embed ttf/DejaVuSans-Bold.ttf
	dejaVuBold []byte
)

type PDFFormatter struct {
	compress bool
}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{compress: true}
}

// Format renders the README as preformatted text under a bold title.
// Text is written with the embedded DejaVu Sans, so any UTF-8 input is encoded as Unicode.
func (mf *PDFFormatter) Format(title, markdown string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(mf.compress)
	pdf.SetTitle(title, true)
	pdf.AddUTF8FontFromBytes(pdfFontName, "", dejaVuRegular)
	pdf.AddUTF8FontFromBytes(pdfFontName, "B", dejaVuBold)
	pdf.AddPage()

	pdf.SetFont(pdfFontName, "B", 20)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	pdf.SetFont(pdfFontName, "", 11)
	_, lineHeight := pdf.GetFontSize()
	pdf.MultiCell(0, lineHeight*1.5, body(markdown), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (mf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
