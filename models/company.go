package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Company is the operating entity a docket is billed under. Name feeds the
// docket number prefix and the PDF letterhead.
type Company struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	GSTIN     string             `json:"gstin,omitempty" bson:"gstin,omitempty"`
	Address   string             `json:"address,omitempty" bson:"address,omitempty"`
	City      string             `json:"city,omitempty" bson:"city,omitempty"`
	State     string             `json:"state,omitempty" bson:"state,omitempty"`
	Pincode   string             `json:"pincode,omitempty" bson:"pincode,omitempty"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Email     string             `json:"email,omitempty" bson:"email,omitempty"`
	Footnote  string             `json:"footnote,omitempty" bson:"footnote,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
