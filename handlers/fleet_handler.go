package handlers

import (
	"encoding/json"
	"net/http"

	"dellcube/models"
	"dellcube/repository"
)

// FleetHandler manages owned vehicles and drivers.
type FleetHandler struct {
	Repo repository.FleetRepository
}

func (h *FleetHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var v models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if v.VehicleNumber == "" || v.Company.IsZero() || v.Branch.IsZero() {
		writeError(w, http.StatusBadRequest, "vehicle number, company, and branch are required")
		return
	}

	if err := h.Repo.CreateVehicle(r.Context(), &v); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create vehicle: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Vehicle created successfully", Data: v})
}

func (h *FleetHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	company, ok := companyScope(w, r)
	if !ok {
		return
	}
	vehicles, err := h.Repo.ListVehicles(r.Context(), company, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if vehicles == nil {
		vehicles = []*models.Vehicle{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Vehicles fetched successfully", Data: vehicles})
}

func (h *FleetHandler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var d models.Driver
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if d.Name == "" || d.ContactNumber == "" || d.Company.IsZero() || d.Branch.IsZero() {
		writeError(w, http.StatusBadRequest, "driver name, contact number, company, and branch are required")
		return
	}

	if err := h.Repo.CreateDriver(r.Context(), &d); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create driver: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Driver created successfully", Data: d})
}

func (h *FleetHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	company, ok := companyScope(w, r)
	if !ok {
		return
	}
	drivers, err := h.Repo.ListDrivers(r.Context(), company, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if drivers == nil {
		drivers = []*models.Driver{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Drivers fetched successfully", Data: drivers})
}
