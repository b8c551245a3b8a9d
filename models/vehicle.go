package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vehicle is an owned fleet vehicle, assignable to Dellcube dockets.
type Vehicle struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Company            primitive.ObjectID `json:"company" bson:"company"`
	Branch             primitive.ObjectID `json:"branch" bson:"branch"`
	VehicleNumber      string             `json:"vehicle_number" bson:"vehicle_number"`
	Model              string             `json:"model,omitempty" bson:"model,omitempty"`
	CapacityKG         float64            `json:"capacity_kg,omitempty" bson:"capacity_kg,omitempty"`
	RegistrationExpiry *time.Time         `json:"registration_expiry,omitempty" bson:"registration_expiry,omitempty"`
	InsuranceExpiry    *time.Time         `json:"insurance_expiry,omitempty" bson:"insurance_expiry,omitempty"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
}
