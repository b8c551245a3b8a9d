package repository

import (
	"context"
	"time"

	"dellcube/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InvoiceFilter narrows list queries. Nil/zero fields are ignored.
type InvoiceFilter struct {
	Company     *primitive.ObjectID
	Branch      *primitive.ObjectID
	Customer    *primitive.ObjectID
	PaymentType string
	VehicleType string
	Search      string // docket number substring, case-insensitive
	FromDate    *time.Time
	ToDate      *time.Time
	Page        int64
	Limit       int64
}

type InvoiceRepository interface {
	// NextDocketSeq atomically allocates the next 1-based sequence number
	// for the (company, branch, calendar day) bucket.
	NextDocketSeq(ctx context.Context, company, branch primitive.ObjectID, day time.Time) (int64, error)
	CreateInvoice(ctx context.Context, inv *models.Invoice) error
	GetInvoiceByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error)
	ListInvoices(ctx context.Context, f InvoiceFilter) ([]*models.Invoice, int64, error)
	UpdateInvoice(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Invoice, error)
	// ReplaceInvoice writes the whole document back in one unit (driver
	// updates mutate the loaded document and save it as-is).
	ReplaceInvoice(ctx context.Context, inv *models.Invoice) error
	DeleteInvoice(ctx context.Context, id primitive.ObjectID) error
}
