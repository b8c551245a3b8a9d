package repository

import (
	"context"

	"dellcube/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VendorRepository interface {
	CreateVendor(ctx context.Context, v *models.Vendor) error
	GetVendorByID(ctx context.Context, id primitive.ObjectID) (*models.Vendor, error)
	ListVendors(ctx context.Context, company *primitive.ObjectID) ([]*models.Vendor, error)
}
