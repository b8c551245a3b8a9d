package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"dellcube/models"
	"dellcube/repository"
	"dellcube/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PDFHandler struct {
	Repo     *repository.PDFRepository
	Renderer *utils.PDFRenderer
	SavePath string
}

// DocketPDF streams the printable three-copy docket for an invoice.
func (h *PDFHandler) DocketPDF(w http.ResponseWriter, r *http.Request, idHex string) {
	h.servePDF(w, r, idHex, false)
}

// DocketPDFDellcube is the owned-fleet variant; vendor dockets are refused.
func (h *PDFHandler) DocketPDFDellcube(w http.ResponseWriter, r *http.Request, idHex string) {
	h.servePDF(w, r, idHex, true)
}

func (h *PDFHandler) servePDF(w http.ResponseWriter, r *http.Request, idHex string, dellcubeOnly bool) {
	invoiceID, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}

	if dellcubeOnly {
		inv, err := h.Repo.GetInvoiceForPDF(r.Context(), invoiceID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				writeError(w, http.StatusNotFound, "invoice not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if inv.VehicleType != models.VehicleTypeDellcube {
			writeError(w, http.StatusBadRequest, "invoice is not a Dellcube vehicle docket")
			return
		}
	}

	pdfBytes, err := utils.GenerateDocketPDF(r.Context(), h.Repo, h.Renderer, invoiceID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate PDF: "+err.Error())
		return
	}
	if len(pdfBytes) == 0 {
		writeError(w, http.StatusNotFound, "invoice not found")
		return
	}

	// Keep a copy on disk when a save path is configured.
	if h.SavePath != "" {
		if err := os.MkdirAll(h.SavePath, os.ModePerm); err == nil {
			filename := fmt.Sprintf("docket_%s_%d.pdf", idHex, time.Now().Unix())
			_ = os.WriteFile(filepath.Join(h.SavePath, filename), pdfBytes, 0644)
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="docket_%s.pdf"`, idHex))
	_, _ = w.Write(pdfBytes)
}
