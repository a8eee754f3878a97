package extract

import (
	"bytes"
	"io"

	"github.com/ledongthuc/pdf"
)

// extractPDF extracts plain text from a PDF document.
// Returns empty string and nil error if the PDF has no extractable text.
func extractPDF(data []byte) (string, error) {
	readerAt := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", err
	}
	plainReader, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(plainReader)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
