package repository

import (
	"context"

	"dellcube/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PartyRepository covers the billing parties a docket hangs off: companies,
// their branches, and customers.
type PartyRepository interface {
	CreateCompany(ctx context.Context, c *models.Company) error
	GetCompanyByID(ctx context.Context, id primitive.ObjectID) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]*models.Company, error)

	CreateBranch(ctx context.Context, b *models.Branch) error
	GetBranchByID(ctx context.Context, id primitive.ObjectID) (*models.Branch, error)
	ListBranches(ctx context.Context, company *primitive.ObjectID) ([]*models.Branch, error)

	CreateCustomer(ctx context.Context, c *models.Customer) error
	GetCustomerByID(ctx context.Context, id primitive.ObjectID) (*models.Customer, error)
	ListCustomers(ctx context.Context, company *primitive.ObjectID) ([]*models.Customer, error)
}
