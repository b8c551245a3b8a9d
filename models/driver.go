package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Driver struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Company       primitive.ObjectID `json:"company" bson:"company"`
	Branch        primitive.ObjectID `json:"branch" bson:"branch"`
	Name          string             `json:"name" bson:"name"`
	ContactNumber string             `json:"contact_number" bson:"contact_number"`
	LicenseNumber string             `json:"license_number,omitempty" bson:"license_number,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}
