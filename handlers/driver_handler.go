package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"dellcube/models"
	"dellcube/repository"
	"dellcube/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DriverHandler serves the driver app surface: trip updates against the one
// invoice the driver is assigned to.
type DriverHandler struct {
	Repo repository.InvoiceRepository

	// UploadAsset stores a driver-submitted file and returns its URL.
	// Overridable in tests; defaults to R2.
	UploadAsset func(ctx context.Context, fileBytes []byte, prefix, originalName, contentType string) (string, error)

	Now func() time.Time
}

func NewDriverHandler(repo repository.InvoiceRepository) *DriverHandler {
	return &DriverHandler{
		Repo:        repo,
		UploadAsset: utils.UploadDriverAsset,
		Now:         time.Now,
	}
}

const maxDriverUploadBytes = 10 << 20

// UpdateDriverInvoice is the single mutation drivers have. Multipart form:
// driver_id, invoice_id, status?, location? (JSON), note?, delivery_proof?
// (JSON), delivered_at?, photo? (file), signature? (file).
//
// The loaded document is mutated and written back whole; two concurrent
// driver sessions on the same invoice are last-write-wins.
func (h *DriverHandler) UpdateDriverInvoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxDriverUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	driverID, err := primitive.ObjectIDFromHex(formValue(r, "driver_id", "driverId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid driver_id")
		return
	}
	invoiceID, err := primitive.ObjectIDFromHex(formValue(r, "invoice_id", "invoiceId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid invoice_id")
		return
	}

	ctx := r.Context()
	inv, err := h.Repo.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "invoice not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if inv.Driver == nil || *inv.Driver != driverID {
		writeError(w, http.StatusForbidden, "invoice is not assigned to this driver")
		return
	}

	update := models.DriverUpdate{Note: formValue(r, "note")}

	if locJSON := formValue(r, "location"); locJSON != "" {
		var loc models.GeoPoint
		if err := json.Unmarshal([]byte(locJSON), &loc); err != nil {
			writeError(w, http.StatusBadRequest, "invalid location JSON")
			return
		}
		update.Location = &loc
	}

	if photoURL, ok := h.uploadFormFile(w, r, "photo", "driver-updates"); !ok {
		return
	} else if photoURL != "" {
		update.OrderPhotoURL = photoURL
	}

	var proofIn models.DeliveryProof
	hasProof := false
	if proofJSON := formValue(r, "delivery_proof", "deliveryProof"); proofJSON != "" {
		if err := json.Unmarshal([]byte(proofJSON), &proofIn); err != nil {
			writeError(w, http.StatusBadRequest, "invalid delivery_proof JSON")
			return
		}
		hasProof = true
	}
	if sigURL, ok := h.uploadFormFile(w, r, "signature", "delivery-proofs"); !ok {
		return
	} else if sigURL != "" {
		proofIn.Signature = sigURL
		hasProof = true
	}

	if statusStr := formValue(r, "status"); statusStr != "" {
		next, err := inv.Status.Transition(models.Status(statusStr))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid status transition: "+string(inv.Status)+" -> "+statusStr)
			return
		}
		inv.Status = next
	}

	if update.Location != nil || update.Note != "" || update.OrderPhotoURL != "" {
		update.Timestamp = h.Now().UTC()
		inv.DriverUpdates = append(inv.DriverUpdates, update)
	}

	if hasProof {
		if inv.DeliveryProof == nil {
			inv.DeliveryProof = &models.DeliveryProof{}
		}
		// Shallow merge: supplied keys win, absent keys survive.
		inv.DeliveryProof.Merge(proofIn)
	}

	if deliveredAt := formValue(r, "delivered_at", "deliveredAt"); deliveredAt != "" {
		t, err := time.Parse(time.RFC3339, deliveredAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid delivered_at, expected RFC3339")
			return
		}
		inv.DeliveredAt = &t
	}

	if err := h.Repo.ReplaceInvoice(ctx, inv); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "invoice not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to save invoice: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Invoice updated successfully",
		Data:    inv,
	})
}

// uploadFormFile uploads the named file part if present. Returns ok=false
// after writing an error response.
func (h *DriverHandler) uploadFormFile(w http.ResponseWriter, r *http.Request, field, prefix string) (string, bool) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", true
		}
		writeError(w, http.StatusBadRequest, "invalid "+field+" upload: "+err.Error())
		return "", false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxDriverUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read "+field+": "+err.Error())
		return "", false
	}

	url, err := h.UploadAsset(r.Context(), data, prefix, header.Filename, fileContentType(header))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to upload "+field+": "+err.Error())
		return "", false
	}
	return url, true
}

func fileContentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// formValue returns the first non-empty value among aliases of a field name.
func formValue(r *http.Request, names ...string) string {
	for _, n := range names {
		if v := r.FormValue(n); v != "" {
			return v
		}
	}
	return ""
}
