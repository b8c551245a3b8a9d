package routes

import (
	"net/http"
	"strings"

	"dellcube/handlers"
	"dellcube/middleware"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func SetupRoutes(
	jwtSecret string,
	userHandler *handlers.UserHandler,
	invoiceHandler *handlers.InvoiceHandler,
	driverHandler *handlers.DriverHandler,
	partyHandler *handlers.PartyHandler,
	fleetHandler *handlers.FleetHandler,
	vendorHandler *handlers.VendorHandler,
	pdfHandler *handlers.PDFHandler,
) {
	open := func(h http.HandlerFunc) http.Handler {
		return withCORS(handlers.RecoverWrapper(h))
	}
	protected := func(h http.HandlerFunc) http.Handler {
		return withCORS(handlers.RecoverWrapper(middleware.RequireAuth(jwtSecret, h)))
	}
	methodSwitch := func(byMethod map[string]http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if h, ok := byMethod[r.Method]; ok {
				h(w, r)
				return
			}
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}

	// Auth routes
	http.Handle("/api/auth/signup/initiate", open(userHandler.SignupInitiate))
	http.Handle("/api/auth/signup/verify", open(userHandler.SignupVerify))
	http.Handle("/api/auth/login", open(userHandler.Login))

	// Invoice routes
	http.Handle("/api/invoices/create", protected(invoiceHandler.CreateInvoice))
	http.Handle("/api/invoices/all", protected(invoiceHandler.ListInvoices))
	http.Handle("/api/invoices/view", protected(invoiceHandler.ViewInvoice))
	http.Handle("/api/invoices/update", protected(invoiceHandler.UpdateInvoice))
	http.Handle("/api/invoices/delete", protected(invoiceHandler.DeleteInvoice))
	http.Handle("/api/invoices/export-csv", open(invoiceHandler.ExportCSV))

	// Docket PDFs: /api/invoices/{id}/pdf and /api/invoices/{id}/pdf-dellcube
	http.Handle("/api/invoices/", open(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		rest := strings.TrimPrefix(r.URL.Path, "/api/invoices/")
		if id, ok := strings.CutSuffix(rest, "/pdf-dellcube"); ok {
			pdfHandler.DocketPDFDellcube(w, r, id)
			return
		}
		if id, ok := strings.CutSuffix(rest, "/pdf"); ok {
			pdfHandler.DocketPDF(w, r, id)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	// Driver app surface
	http.Handle("/api/driver/update-driver-invoice", protected(methodSwitch(map[string]http.HandlerFunc{
		http.MethodPut: driverHandler.UpdateDriverInvoice,
	})))

	// Reference data
	http.Handle("/api/companies", protected(methodSwitch(map[string]http.HandlerFunc{
		http.MethodPost: partyHandler.CreateCompany,
		http.MethodGet:  partyHandler.ListCompanies,
	})))
	http.Handle("/api/branches", protected(methodSwitch(map[string]http.HandlerFunc{
		http.MethodPost: partyHandler.CreateBranch,
		http.MethodGet:  partyHandler.ListBranches,
	})))
	http.Handle("/api/customers", protected(methodSwitch(map[string]http.HandlerFunc{
		http.MethodPost: partyHandler.CreateCustomer,
		http.MethodGet:  partyHandler.ListCustomers,
	})))
	http.Handle("/api/vehicles", protected(methodSwitch(map[string]http.HandlerFunc{
		http.MethodPost: fleetHandler.CreateVehicle,
		http.MethodGet:  fleetHandler.ListVehicles,
	})))
	http.Handle("/api/drivers", protected(methodSwitch(map[string]http.HandlerFunc{
		http.MethodPost: fleetHandler.CreateDriver,
		http.MethodGet:  fleetHandler.ListDrivers,
	})))
	http.Handle("/api/vendors", protected(methodSwitch(map[string]http.HandlerFunc{
		http.MethodPost: vendorHandler.CreateVendor,
		http.MethodGet:  vendorHandler.ListVendors,
	})))
}
