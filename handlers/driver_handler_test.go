package handlers

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dellcube/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newDriverEnv(t *testing.T) (*DriverHandler, *fakeInvoiceRepo, *models.Invoice, primitive.ObjectID) {
	t.Helper()
	repo := newFakeInvoiceRepo()
	h := NewDriverHandler(repo)
	h.Now = func() time.Time { return time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC) }
	h.UploadAsset = func(_ context.Context, _ []byte, prefix, originalName, _ string) (string, error) {
		return "https://assets.test/" + prefix + "/" + originalName, nil
	}

	driverID := primitive.NewObjectID()
	inv := &models.Invoice{
		DocketNumber: "DLC-ACM-SOUT-240501-0001",
		Company:      primitive.NewObjectID(),
		Branch:       primitive.NewObjectID(),
		Customer:     primitive.NewObjectID(),
		VehicleType:  models.VehicleTypeDellcube,
		Status:       models.StatusCreated,
		Driver:       &driverID,
		CreatedAt:    time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	if err := repo.CreateInvoice(context.Background(), inv); err != nil {
		t.Fatal(err)
	}
	return h, repo, inv, driverID
}

func doDriverUpdate(t *testing.T, h *DriverHandler, fields map[string]string, files map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	for name, data := range files {
		fw, err := mw.CreateFormFile(name, name+".jpg")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPut, "/api/driver/update-driver-invoice", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	h.UpdateDriverInvoice(rr, req)
	return rr
}

func TestDriverUpdateRejectsUnassignedDriver(t *testing.T) {
	h, repo, inv, _ := newDriverEnv(t)

	rr := doDriverUpdate(t, h, map[string]string{
		"driver_id":  primitive.NewObjectID().Hex(),
		"invoice_id": inv.ID.Hex(),
		"note":       "should not land",
	}, nil)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403; body %s", rr.Code, rr.Body.String())
	}

	stored := repo.invoices[inv.ID]
	if len(stored.DriverUpdates) != 0 {
		t.Errorf("rejected update appended %d log entries", len(stored.DriverUpdates))
	}
	if stored.Status != models.StatusCreated {
		t.Errorf("rejected update changed status to %q", stored.Status)
	}
}

func TestDriverUpdateInvoiceNotFound(t *testing.T) {
	h, _, _, driverID := newDriverEnv(t)

	rr := doDriverUpdate(t, h, map[string]string{
		"driver_id":  driverID.Hex(),
		"invoice_id": primitive.NewObjectID().Hex(),
	}, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestDriverUpdateAppendsOrderedLog(t *testing.T) {
	h, repo, inv, driverID := newDriverEnv(t)

	tick := 0
	h.Now = func() time.Time {
		tick++
		return time.Date(2024, 5, 2, 8, tick, 0, 0, time.UTC)
	}

	for i := 1; i <= 3; i++ {
		rr := doDriverUpdate(t, h, map[string]string{
			"driver_id":  driverID.Hex(),
			"invoice_id": inv.ID.Hex(),
			"note":       fmt.Sprintf("checkpoint %d", i),
		}, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("update %d: status %d, body %s", i, rr.Code, rr.Body.String())
		}
	}

	stored := repo.invoices[inv.ID]
	if len(stored.DriverUpdates) != 3 {
		t.Fatalf("log has %d entries, want 3", len(stored.DriverUpdates))
	}
	for i, u := range stored.DriverUpdates {
		want := fmt.Sprintf("checkpoint %d", i+1)
		if u.Note != want {
			t.Errorf("entry %d note = %q, want %q", i, u.Note, want)
		}
		if i > 0 && !stored.DriverUpdates[i-1].Timestamp.Before(u.Timestamp) {
			t.Errorf("entry %d timestamp not after previous", i)
		}
	}
}

func TestDriverUpdateLocation(t *testing.T) {
	h, repo, inv, driverID := newDriverEnv(t)

	rr := doDriverUpdate(t, h, map[string]string{
		"driver_id":  driverID.Hex(),
		"invoice_id": inv.ID.Hex(),
		"location":   `{"lat":19.076,"lng":72.8777}`,
	}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	stored := repo.invoices[inv.ID]
	if len(stored.DriverUpdates) != 1 || stored.DriverUpdates[0].Location == nil {
		t.Fatalf("location entry missing: %+v", stored.DriverUpdates)
	}
	if loc := stored.DriverUpdates[0].Location; loc.Lat != 19.076 || loc.Lng != 72.8777 {
		t.Errorf("location = %+v", loc)
	}
}

func TestDriverUpdateStatusTransition(t *testing.T) {
	h, repo, inv, driverID := newDriverEnv(t)

	rr := doDriverUpdate(t, h, map[string]string{
		"driver_id":  driverID.Hex(),
		"invoice_id": inv.ID.Hex(),
		"status":     "Delivered",
	}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Created -> Delivered: status %d, want 400; body %s", rr.Code, rr.Body.String())
	}
	if repo.invoices[inv.ID].Status != models.StatusCreated {
		t.Errorf("status changed despite rejected transition")
	}

	rr = doDriverUpdate(t, h, map[string]string{
		"driver_id":  driverID.Hex(),
		"invoice_id": inv.ID.Hex(),
		"status":     "Dispatched",
	}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Created -> Dispatched: status %d, body %s", rr.Code, rr.Body.String())
	}
	if repo.invoices[inv.ID].Status != models.StatusDispatched {
		t.Errorf("status = %q, want Dispatched", repo.invoices[inv.ID].Status)
	}
}

func TestDriverUpdateDeliveryProofMerge(t *testing.T) {
	h, repo, inv, driverID := newDriverEnv(t)

	rr := doDriverUpdate(t, h, map[string]string{
		"driver_id":      driverID.Hex(),
		"invoice_id":     inv.ID.Hex(),
		"delivery_proof": `{"receiver_name":"Asha Patel","receiver_mobile":"9812345678"}`,
	}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("first proof: status %d, body %s", rr.Code, rr.Body.String())
	}

	rr = doDriverUpdate(t, h, map[string]string{
		"driver_id":      driverID.Hex(),
		"invoice_id":     inv.ID.Hex(),
		"delivery_proof": `{"remarks":"left at security gate"}`,
	}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("second proof: status %d, body %s", rr.Code, rr.Body.String())
	}

	proof := repo.invoices[inv.ID].DeliveryProof
	if proof == nil {
		t.Fatal("delivery proof missing")
	}
	// Second submission only carried remarks; earlier keys must survive.
	if proof.ReceiverName != "Asha Patel" {
		t.Errorf("receiver_name = %q, want Asha Patel", proof.ReceiverName)
	}
	if proof.ReceiverMobile != "9812345678" {
		t.Errorf("receiver_mobile = %q", proof.ReceiverMobile)
	}
	if proof.Remarks != "left at security gate" {
		t.Errorf("remarks = %q", proof.Remarks)
	}
}

func TestDriverUpdatePhotoAndSignatureUploads(t *testing.T) {
	h, repo, inv, driverID := newDriverEnv(t)

	rr := doDriverUpdate(t, h, map[string]string{
		"driver_id":  driverID.Hex(),
		"invoice_id": inv.ID.Hex(),
	}, map[string][]byte{
		"photo":     []byte("jpeg-bytes"),
		"signature": []byte("png-bytes"),
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	stored := repo.invoices[inv.ID]
	if len(stored.DriverUpdates) != 1 {
		t.Fatalf("log has %d entries, want 1", len(stored.DriverUpdates))
	}
	if got := stored.DriverUpdates[0].OrderPhotoURL; got != "https://assets.test/driver-updates/photo.jpg" {
		t.Errorf("photo URL = %q", got)
	}
	if stored.DeliveryProof == nil || stored.DeliveryProof.Signature != "https://assets.test/delivery-proofs/signature.jpg" {
		t.Errorf("signature not stored on proof: %+v", stored.DeliveryProof)
	}
}

func TestDriverUpdateDeliveredAt(t *testing.T) {
	h, repo, inv, driverID := newDriverEnv(t)

	rr := doDriverUpdate(t, h, map[string]string{
		"driver_id":    driverID.Hex(),
		"invoice_id":   inv.ID.Hex(),
		"delivered_at": "not-a-timestamp",
	}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad timestamp: status %d, want 400", rr.Code)
	}

	rr = doDriverUpdate(t, h, map[string]string{
		"driver_id":    driverID.Hex(),
		"invoice_id":   inv.ID.Hex(),
		"delivered_at": "2024-05-02T14:30:00Z",
	}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	stored := repo.invoices[inv.ID]
	if stored.DeliveredAt == nil || !stored.DeliveredAt.Equal(time.Date(2024, 5, 2, 14, 30, 0, 0, time.UTC)) {
		t.Errorf("delivered_at = %v", stored.DeliveredAt)
	}
}
