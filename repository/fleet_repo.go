package repository

import (
	"context"

	"dellcube/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FleetRepository manages owned vehicles and drivers.
type FleetRepository interface {
	CreateVehicle(ctx context.Context, v *models.Vehicle) error
	GetVehicleByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	ListVehicles(ctx context.Context, company, branch *primitive.ObjectID) ([]*models.Vehicle, error)

	CreateDriver(ctx context.Context, d *models.Driver) error
	GetDriverByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error)
	ListDrivers(ctx context.Context, company, branch *primitive.ObjectID) ([]*models.Driver, error)
}
