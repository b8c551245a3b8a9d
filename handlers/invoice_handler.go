package handlers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"dellcube/middleware"
	"dellcube/models"
	"dellcube/repository"
	"dellcube/utils"

	"github.com/jinzhu/now"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type InvoiceHandler struct {
	Repo       repository.InvoiceRepository
	PartyRepo  repository.PartyRepository
	FleetRepo  repository.FleetRepository
	VendorRepo repository.VendorRepository

	// Now is the clock used for docket numbering; overridable in tests.
	Now func() time.Time
}

func NewInvoiceHandler(repo repository.InvoiceRepository, partyRepo repository.PartyRepository, fleetRepo repository.FleetRepository, vendorRepo repository.VendorRepository) *InvoiceHandler {
	return &InvoiceHandler{
		Repo:       repo,
		PartyRepo:  partyRepo,
		FleetRepo:  fleetRepo,
		VendorRepo: vendorRepo,
		Now:        time.Now,
	}
}

type createInvoiceRequest struct {
	models.Invoice
	VendorVehicleNumber string `json:"vendor_vehicle_number"`
}

// CreateInvoice assigns the docket number and persists a new shipment
// docket. Non-super-admin callers are silently scoped to their own
// company/branch regardless of what the payload says.
func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	inv := req.Invoice

	if !claims.IsSuperAdmin() {
		companyID, err1 := primitive.ObjectIDFromHex(claims.Company)
		branchID, err2 := primitive.ObjectIDFromHex(claims.Branch)
		if err1 != nil || err2 != nil {
			writeError(w, http.StatusBadRequest, "acting user has no company/branch scope")
			return
		}
		inv.Company = companyID
		inv.Branch = branchID
	}

	if inv.Company.IsZero() || inv.Branch.IsZero() {
		writeError(w, http.StatusBadRequest, "company and branch are required")
		return
	}
	if inv.Customer.IsZero() {
		writeError(w, http.StatusBadRequest, "customer is required")
		return
	}

	ctx := r.Context()
	company, err := h.PartyRepo.GetCompanyByID(ctx, inv.Company)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "company not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	branch, err := h.PartyRepo.GetBranchByID(ctx, inv.Branch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "branch not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if _, err := h.PartyRepo.GetCustomerByID(ctx, inv.Customer); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "customer not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	switch inv.VehicleType {
	case models.VehicleTypeVendor:
		if inv.Vendor == nil {
			writeError(w, http.StatusBadRequest, "vendor is required for vendor vehicle type")
			return
		}
		if req.VendorVehicleNumber == "" {
			writeError(w, http.StatusBadRequest, "vendor vehicle number is required")
			return
		}
		vendor, err := h.VendorRepo.GetVendorByID(ctx, *inv.Vendor)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				writeError(w, http.StatusNotFound, "vendor not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		vv, found := vendor.FindVehicle(req.VendorVehicleNumber)
		if !found {
			writeError(w, http.StatusNotFound, "vehicle not found in vendor's available vehicles")
			return
		}
		// Snapshot by value: later edits to the vendor never touch this.
		inv.VendorVehicle = &vv
		inv.Vehicle = nil
	case models.VehicleTypeDellcube:
		if inv.Vehicle == nil {
			writeError(w, http.StatusBadRequest, "vehicle is required for dellcube vehicle type")
			return
		}
		inv.Vendor = nil
		inv.VendorVehicle = nil
	default:
		writeError(w, http.StatusBadRequest, "vehicle type must be Dellcube or Vendor")
		return
	}

	if inv.Driver != nil {
		if _, err := h.FleetRepo.GetDriverByID(ctx, *inv.Driver); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				writeError(w, http.StatusNotFound, "driver not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	if inv.Status == "" {
		inv.Status = models.StatusCreated
	} else if !inv.Status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	createdAt := h.Now().UTC()
	seq, err := h.Repo.NextDocketSeq(ctx, inv.Company, inv.Branch, createdAt)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to allocate docket sequence: "+err.Error())
		return
	}
	inv.DocketNumber = utils.FormatDocketNumber(company.Name, branch.Name, createdAt, seq)
	inv.CreatedAt = createdAt
	inv.DriverUpdates = nil
	inv.DeliveryProof = nil
	inv.DeliveredAt = nil

	if err := h.Repo.CreateInvoice(ctx, &inv); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			writeError(w, http.StatusConflict, "docket number already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create invoice: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "Invoice created successfully",
		Data:    inv,
	})
}

// ListInvoices is the paginated, filterable admin listing.
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	filter, err := invoiceFilterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !claims.IsSuperAdmin() {
		if companyID, err := primitive.ObjectIDFromHex(claims.Company); err == nil {
			filter.Company = &companyID
		}
		if branchID, err := primitive.ObjectIDFromHex(claims.Branch); err == nil {
			filter.Branch = &branchID
		}
	}

	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	filter.Page = page
	filter.Limit = limit

	invoices, total, err := h.Repo.ListInvoices(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if invoices == nil {
		invoices = []*models.Invoice{}
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Invoices fetched successfully",
		Data: map[string]interface{}{
			"invoices":    invoices,
			"total":       total,
			"page":        page,
			"limit":       limit,
			"total_pages": totalPages,
		},
	})
}

func invoiceFilterFromQuery(r *http.Request) (repository.InvoiceFilter, error) {
	q := r.URL.Query()
	var f repository.InvoiceFilter

	for param, dst := range map[string]**primitive.ObjectID{
		"companyId":  &f.Company,
		"branchId":   &f.Branch,
		"customerId": &f.Customer,
	} {
		if v := q.Get(param); v != "" {
			id, err := primitive.ObjectIDFromHex(v)
			if err != nil {
				return f, fmt.Errorf("invalid %s", param)
			}
			*dst = &id
		}
	}

	f.PaymentType = q.Get("paymentType")
	f.VehicleType = q.Get("vehicleType")
	f.Search = q.Get("search")

	if v := q.Get("fromDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, errors.New("invalid fromDate, expected YYYY-MM-DD")
		}
		from := now.With(t).BeginningOfDay()
		f.FromDate = &from
	}
	if v := q.Get("toDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, errors.New("invalid toDate, expected YYYY-MM-DD")
		}
		to := now.With(t).EndOfDay()
		f.ToDate = &to
	}
	return f, nil
}

// ViewInvoice fetches a single invoice by id. Read-only.
func (h *InvoiceHandler) ViewInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := invoiceIDFromRequest(w, r)
	if !ok {
		return
	}

	inv, err := h.Repo.GetInvoiceByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "invoice not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Invoice fetched successfully",
		Data:    inv,
	})
}

// updatableInvoiceFields maps the payload keys a partial update may touch to
// the kind of conversion each needs. Anything else is rejected outright;
// docket_number in particular is never writable.
var updatableInvoiceFields = map[string]string{
	"order_number":          "string",
	"customer":              "oid",
	"site_type":             "oid",
	"transport_mode":        "oid",
	"goods_type":            "oid",
	"from_address":          "geo",
	"to_address":            "geo",
	"pickup_address":        "string",
	"delivery_address":      "string",
	"consignor":             "string",
	"consignee":             "string",
	"total_weight":          "number",
	"number_of_packages":    "number",
	"goods_value":           "number",
	"rate_per_kg":           "number",
	"freight_rs":            "number",
	"freight_charges":       "number",
	"aoc":                   "number",
	"hamali":                "number",
	"dd_charges":            "number",
	"st_charges":            "number",
	"service_charge":        "number",
	"paid":                  "number",
	"to_pay":                "number",
	"tbb":                   "number",
	"total":                 "number",
	"payment_type":          "string",
	"vehicle_type":          "string",
	"vehicle":               "oid",
	"vendor":                "oid",
	"vendor_vehicle":        "vendor_vehicle",
	"driver":                "oid",
	"driver_contact_number": "string",
	"status":                "status",
	"delivered_at":          "time",
}

// superAdminOnlyFields may only be reassigned by super admins. Changing them
// never recomputes the docket number.
var superAdminOnlyFields = map[string]bool{
	"company": true,
	"branch":  true,
}

// UpdateInvoice applies an allow-listed partial update. Unknown keys are a
// 400, status changes go through the transition table.
func (h *InvoiceHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	id, ok := invoiceIDFromBody(w, body)
	if !ok {
		return
	}

	current, err := h.Repo.GetInvoiceByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "invoice not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	fields := make(map[string]interface{})
	for key, raw := range body {
		if key == "invoice_id" || key == "invoiceId" {
			continue
		}
		if superAdminOnlyFields[key] {
			if !claims.IsSuperAdmin() {
				writeError(w, http.StatusForbidden, "only super admins may reassign "+key)
				return
			}
			oid, err := objectIDValue(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid "+key)
				return
			}
			fields[key] = oid
			continue
		}

		kind, allowed := updatableInvoiceFields[key]
		if !allowed {
			writeError(w, http.StatusBadRequest, "field not updatable: "+key)
			return
		}

		val, err := convertUpdateValue(kind, raw, current)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s: %v", key, err))
			return
		}
		fields[key] = val
	}

	if len(fields) == 0 {
		writeError(w, http.StatusBadRequest, "no updatable fields supplied")
		return
	}

	updated, err := h.Repo.UpdateInvoice(r.Context(), id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "invoice not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Invoice updated successfully",
		Data:    updated,
	})
}

func convertUpdateValue(kind string, raw interface{}, current *models.Invoice) (interface{}, error) {
	switch kind {
	case "string":
		s, ok := raw.(string)
		if !ok {
			return nil, errors.New("expected string")
		}
		return s, nil
	case "number":
		n, ok := raw.(float64)
		if !ok {
			return nil, errors.New("expected number")
		}
		return n, nil
	case "oid":
		return objectIDValue(raw)
	case "geo":
		return geoRefValue(raw)
	case "status":
		s, ok := raw.(string)
		if !ok {
			return nil, errors.New("expected string")
		}
		next, err := current.Status.Transition(models.Status(s))
		if err != nil {
			return nil, fmt.Errorf("%w: %s -> %s", err, current.Status, s)
		}
		return next, nil
	case "time":
		s, ok := raw.(string)
		if !ok {
			return nil, errors.New("expected RFC3339 timestamp")
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, err
		}
		return t, nil
	case "vendor_vehicle":
		return vendorVehicleValue(raw)
	default:
		return nil, errors.New("unsupported field kind")
	}
}

// vendorVehicleValue re-decodes the payload object through the snapshot
// struct so only its known keys can land in the document.
func vendorVehicleValue(raw interface{}) (interface{}, error) {
	if raw == nil {
		return nil, nil
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.DisallowUnknownFields()
	var vv models.VendorVehicle
	if err := dec.Decode(&vv); err != nil {
		return nil, err
	}
	return vv, nil
}

func objectIDValue(raw interface{}) (interface{}, error) {
	if raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, errors.New("expected hex object id")
	}
	return primitive.ObjectIDFromHex(s)
}

// geoRefValue converts a JSON address object (hex id strings) into ObjectIDs
// so it round-trips through bson the same way created documents do.
func geoRefValue(raw interface{}) (interface{}, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errors.New("expected address object")
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		switch k {
		case "country", "state", "city", "locality", "pincode":
			oid, err := objectIDValue(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %v", k, err)
			}
			out[k] = oid
		default:
			return nil, errors.New("unknown address key: " + k)
		}
	}
	return out, nil
}

// DeleteInvoice is an unconditional hard delete.
func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := invoiceIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.Repo.DeleteInvoice(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "invoice not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete invoice: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Invoice deleted successfully",
	})
}

// ExportCSV streams the filtered invoice list as CSV, unpaginated.
func (h *InvoiceHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := invoiceFilterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	invoices, _, err := h.Repo.ListInvoices(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="invoices.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{
		"Docket Number", "Created At", "Status", "Payment Type", "Vehicle Type",
		"Vehicle Number", "Consignor", "Consignee", "Pickup Address", "Delivery Address",
		"Packages", "Total Weight", "Goods Value", "Total",
	})
	for _, inv := range invoices {
		vehicleNumber := ""
		if inv.VendorVehicle != nil {
			vehicleNumber = inv.VendorVehicle.VehicleNumber
		}
		_ = cw.Write([]string{
			inv.DocketNumber,
			inv.CreatedAt.Format("2006-01-02 15:04:05"),
			string(inv.Status),
			string(inv.PaymentType),
			string(inv.VehicleType),
			vehicleNumber,
			inv.Consignor,
			inv.Consignee,
			inv.PickupAddress,
			inv.DeliveryAddress,
			strconv.Itoa(inv.NumberOfPackages),
			strconv.FormatFloat(inv.TotalWeight, 'f', 2, 64),
			strconv.FormatFloat(inv.GoodsValue, 'f', 2, 64),
			strconv.FormatFloat(inv.Total, 'f', 2, 64),
		})
	}
	cw.Flush()
}

// invoiceIDFromRequest reads {invoice_id} (or the legacy invoiceId key) from
// a JSON body and writes the error response itself on failure.
func invoiceIDFromRequest(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return primitive.NilObjectID, false
	}
	return invoiceIDFromBody(w, body)
}

func invoiceIDFromBody(w http.ResponseWriter, body map[string]interface{}) (primitive.ObjectID, bool) {
	raw, ok := body["invoice_id"]
	if !ok {
		raw, ok = body["invoiceId"]
	}
	if !ok {
		writeError(w, http.StatusBadRequest, "invoice_id is required")
		return primitive.NilObjectID, false
	}
	s, _ := raw.(string)
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid invoice_id")
		return primitive.NilObjectID, false
	}
	return id, true
}
