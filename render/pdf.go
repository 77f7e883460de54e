package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/securecorp/secreport/model"
)

// WritePDF rasterizes the HTML document into reportsDir and returns the path
// of the written file. Filenames carry the report type and a timestamp so
// repeated runs never overwrite each other.
func WritePDF(html, reportsDir, reportType string, generatedAt time.Time) (string, error) {
	if err := os.MkdirAll(reportsDir, 0o755); err != nil {
		return "", &model.RenderError{Err: fmt.Errorf("reports dir: %w", err)}
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return "", &model.RenderError{Err: err}
	}
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.MarginTop.Set(10)
	pdfg.MarginBottom.Set(10)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return "", &model.RenderError{Err: err}
	}

	name := fmt.Sprintf("%s_%s.pdf", reportType, generatedAt.Format("20060102_150405"))
	path := filepath.Join(reportsDir, name)
	if err := pdfg.WriteFile(path); err != nil {
		return "", &model.RenderError{Err: err}
	}
	return path, nil
}
