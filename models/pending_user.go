package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PendingUser is a staged signup awaiting OTP verification. Stored in its
// own collection with a TTL index on ExpiresAt so stale registrations
// disappear on their own and survive process restarts.
type PendingUser struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name      string              `json:"name" bson:"name"`
	Email     string              `json:"email" bson:"email"`
	Role      string              `json:"role" bson:"role"`
	Company   *primitive.ObjectID `json:"company,omitempty" bson:"company,omitempty"`
	Branch    *primitive.ObjectID `json:"branch,omitempty" bson:"branch,omitempty"`
	Password  string              `json:"-" bson:"password"`
	OTP       string              `json:"-" bson:"otp"`
	ExpiresAt time.Time           `json:"expires_at" bson:"expires_at"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
}
