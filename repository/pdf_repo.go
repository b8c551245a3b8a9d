package repository

import (
	"context"

	"dellcube/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PDFRepository provides the data a printable docket needs in one place.
type PDFRepository struct {
	InvoiceRepo InvoiceRepository
	PartyRepo   PartyRepository
	FleetRepo   FleetRepository
}

func NewPDFRepository(invoiceRepo InvoiceRepository, partyRepo PartyRepository, fleetRepo FleetRepository) *PDFRepository {
	return &PDFRepository{
		InvoiceRepo: invoiceRepo,
		PartyRepo:   partyRepo,
		FleetRepo:   fleetRepo,
	}
}

func (r *PDFRepository) GetInvoiceForPDF(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	return r.InvoiceRepo.GetInvoiceByID(ctx, id)
}

func (r *PDFRepository) GetCompanyForPDF(ctx context.Context, id primitive.ObjectID) (*models.Company, error) {
	return r.PartyRepo.GetCompanyByID(ctx, id)
}

func (r *PDFRepository) GetBranchForPDF(ctx context.Context, id primitive.ObjectID) (*models.Branch, error) {
	return r.PartyRepo.GetBranchByID(ctx, id)
}

// VehicleNumberFor resolves the number printed on the docket: the fleet
// vehicle for Dellcube dockets, the frozen snapshot for Vendor dockets.
func (r *PDFRepository) VehicleNumberFor(ctx context.Context, inv *models.Invoice) string {
	if inv.VehicleType == models.VehicleTypeVendor && inv.VendorVehicle != nil {
		return inv.VendorVehicle.VehicleNumber
	}
	if inv.Vehicle != nil {
		if v, err := r.FleetRepo.GetVehicleByID(ctx, *inv.Vehicle); err == nil {
			return v.VehicleNumber
		}
	}
	return ""
}
