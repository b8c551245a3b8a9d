package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VendorVehicle is an embedded sub-document of Vendor, not a collection of
// its own. When a Vendor docket is created the matching entry is copied by
// value onto the invoice; the snapshot does not follow later vendor edits.
type VendorVehicle struct {
	VehicleNumber string  `json:"vehicle_number" bson:"vehicle_number"`
	VehicleModel  string  `json:"vehicle_model,omitempty" bson:"vehicle_model,omitempty"`
	VehicleType   string  `json:"vehicle_type,omitempty" bson:"vehicle_type,omitempty"`
	CapacityKG    float64 `json:"capacity_kg,omitempty" bson:"capacity_kg,omitempty"`
	DriverName    string  `json:"driver_name,omitempty" bson:"driver_name,omitempty"`
	DriverPhone   string  `json:"driver_phone,omitempty" bson:"driver_phone,omitempty"`
}

type Vendor struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Company           primitive.ObjectID `json:"company" bson:"company"`
	Name              string             `json:"name" bson:"name"`
	GSTIN             string             `json:"gstin,omitempty" bson:"gstin,omitempty"`
	ContactPerson     string             `json:"contact_person,omitempty" bson:"contact_person,omitempty"`
	Phone             string             `json:"phone,omitempty" bson:"phone,omitempty"`
	AvailableVehicles []VendorVehicle    `json:"available_vehicles,omitempty" bson:"available_vehicles,omitempty"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
}

// FindVehicle locates the embedded vehicle by number. The returned value is
// a copy, safe to snapshot onto an invoice.
func (v *Vendor) FindVehicle(number string) (VendorVehicle, bool) {
	for _, vv := range v.AvailableVehicles {
		if vv.VehicleNumber == number {
			return vv, true
		}
	}
	return VendorVehicle{}, false
}
