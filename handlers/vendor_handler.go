package handlers

import (
	"encoding/json"
	"net/http"

	"dellcube/models"
	"dellcube/repository"
)

// VendorHandler manages hired-transport vendors and their embedded vehicle
// lists.
type VendorHandler struct {
	Repo repository.VendorRepository
}

func (h *VendorHandler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var v models.Vendor
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if v.Name == "" || v.Company.IsZero() {
		writeError(w, http.StatusBadRequest, "vendor name and company are required")
		return
	}
	for _, vv := range v.AvailableVehicles {
		if vv.VehicleNumber == "" {
			writeError(w, http.StatusBadRequest, "every vendor vehicle needs a vehicle number")
			return
		}
	}

	if err := h.Repo.CreateVendor(r.Context(), &v); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create vendor: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Vendor created successfully", Data: v})
}

func (h *VendorHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	company, ok := companyScope(w, r)
	if !ok {
		return
	}
	vendors, err := h.Repo.ListVendors(r.Context(), company)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if vendors == nil {
		vendors = []*models.Vendor{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Vendors fetched successfully", Data: vendors})
}
