package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Customer struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Company       primitive.ObjectID `json:"company" bson:"company"`
	Name          string             `json:"name" bson:"name"`
	GSTIN         string             `json:"gstin,omitempty" bson:"gstin,omitempty"`
	ContactPerson string             `json:"contact_person,omitempty" bson:"contact_person,omitempty"`
	Phone         string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Email         string             `json:"email,omitempty" bson:"email,omitempty"`
	Address       string             `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}
