package utils

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"
	"sync"
	"time"

	"dellcube/models"
	"dellcube/repository"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PDFRenderer owns a process-lifetime headless-Chrome exec allocator shared
// across requests. Every render goes through a fresh tab; if Chrome has died
// the allocator is torn down and respawned once before the render fails.
type PDFRenderer struct {
	mu          sync.Mutex
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) ensureAllocator() {
	if r.allocCtx != nil && r.allocCtx.Err() == nil {
		return
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(),
		chromedp.DefaultExecAllocatorOptions[:]...)
}

func (r *PDFRenderer) respawn() {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	r.allocCtx, r.allocCancel = nil, nil
	r.ensureAllocator()
}

func (r *PDFRenderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.allocCancel != nil {
		r.allocCancel()
		r.allocCtx, r.allocCancel = nil, nil
	}
}

// RenderHTML prints the given HTML document to an A4 PDF.
func (r *PDFRenderer) RenderHTML(html string) ([]byte, error) {
	tmpHTML := filepath.Join(os.TempDir(), "docket_"+time.Now().Format("20060102150405.000")+".html")
	if err := os.WriteFile(tmpHTML, []byte(html), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureAllocator()
	pdf, err := r.printPage("file://" + tmpHTML)
	if err != nil {
		// Chrome may have crashed since the last render; one respawn, one retry.
		r.respawn()
		pdf, err = r.printPage("file://" + tmpHTML)
	}
	return pdf, err
}

func (r *PDFRenderer) printPage(fileURL string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(r.allocCtx)
	defer cancel()

	var pdfBuf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate(fileURL),
		chromedp.Sleep(500*time.Millisecond),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}

var docketCopyTitles = []string{"Consignor Copy", "Consignee Copy", "Driver Copy"}

// GenerateDocketPDF renders the three-copy printable docket for an invoice.
// Returns nil bytes when the invoice does not exist.
func GenerateDocketPDF(ctx context.Context, repo *repository.PDFRepository, renderer *PDFRenderer, invoiceID primitive.ObjectID) ([]byte, error) {
	inv, err := repo.GetInvoiceForPDF(ctx, invoiceID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	company, err := repo.GetCompanyForPDF(ctx, inv.Company)
	if err != nil {
		return nil, err
	}
	branch, err := repo.GetBranchForPDF(ctx, inv.Branch)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.ParseFiles("templates/docket_template.html")
	if err != nil {
		return nil, err
	}

	formattedDate := "-"
	if !inv.CreatedAt.IsZero() {
		formattedDate = inv.CreatedAt.Format("02-Jan-2006")
	}

	var fullHTML bytes.Buffer
	for _, title := range docketCopyTitles {
		data := models.DocketPDFData{
			Company:       company,
			Branch:        branch,
			Invoice:       inv,
			Date:          formattedDate,
			Total:         inv.Total,
			TotalWords:    AmountInWords(inv.Total),
			CopyTitle:     title,
			VehicleNumber: repo.VehicleNumberFor(ctx, inv),
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, err
		}

		fullHTML.WriteString("<div class='docket-copy'>")
		fullHTML.Write(buf.Bytes())
		fullHTML.WriteString("</div>")
	}

	finalHTML := `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
@page {
	size: A4;
	margin: 20px;
}
body {
	font-family: Arial, Helvetica, sans-serif;
	font-size: 12px;
	margin: 0;
	padding: 0;
}
.docket-copy {
	page-break-inside: avoid;
	border: none;
}
</style>
</head>
<body>` + fullHTML.String() + `</body></html>`

	return renderer.RenderHTML(finalHTML)
}
