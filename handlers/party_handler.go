package handlers

import (
	"encoding/json"
	"net/http"

	"dellcube/middleware"
	"dellcube/models"
	"dellcube/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PartyHandler manages companies, branches and customers.
type PartyHandler struct {
	Repo repository.PartyRepository
}

func (h *PartyHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || !claims.IsSuperAdmin() {
		writeError(w, http.StatusForbidden, "only super admins may create companies")
		return
	}

	var c models.Company
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if c.Name == "" {
		writeError(w, http.StatusBadRequest, "company name is required")
		return
	}

	if err := h.Repo.CreateCompany(r.Context(), &c); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create company: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Company created successfully", Data: c})
}

func (h *PartyHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.Repo.ListCompanies(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if companies == nil {
		companies = []*models.Company{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Companies fetched successfully", Data: companies})
}

func (h *PartyHandler) CreateBranch(w http.ResponseWriter, r *http.Request) {
	var b models.Branch
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if b.Name == "" || b.Company.IsZero() {
		writeError(w, http.StatusBadRequest, "branch name and company are required")
		return
	}

	if err := h.Repo.CreateBranch(r.Context(), &b); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create branch: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Branch created successfully", Data: b})
}

func (h *PartyHandler) ListBranches(w http.ResponseWriter, r *http.Request) {
	company, ok := companyScope(w, r)
	if !ok {
		return
	}
	branches, err := h.Repo.ListBranches(r.Context(), company)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if branches == nil {
		branches = []*models.Branch{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Branches fetched successfully", Data: branches})
}

func (h *PartyHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var c models.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if c.Name == "" || c.Company.IsZero() {
		writeError(w, http.StatusBadRequest, "customer name and company are required")
		return
	}

	if err := h.Repo.CreateCustomer(r.Context(), &c); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create customer: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Customer created successfully", Data: c})
}

func (h *PartyHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	company, ok := companyScope(w, r)
	if !ok {
		return
	}
	customers, err := h.Repo.ListCustomers(r.Context(), company)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if customers == nil {
		customers = []*models.Customer{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Customers fetched successfully", Data: customers})
}

// companyScope resolves the company filter for list endpoints: super admins
// may pass ?companyId=, everyone else is pinned to their own company.
func companyScope(w http.ResponseWriter, r *http.Request) (*primitive.ObjectID, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}

	if claims.IsSuperAdmin() {
		if v := r.URL.Query().Get("companyId"); v != "" {
			id, err := primitive.ObjectIDFromHex(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid companyId")
				return nil, false
			}
			return &id, true
		}
		return nil, true
	}

	id, err := primitive.ObjectIDFromHex(claims.Company)
	if err != nil {
		writeError(w, http.StatusBadRequest, "acting user has no company scope")
		return nil, false
	}
	return &id, true
}
