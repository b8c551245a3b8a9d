package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleSuperAdmin  = "super-admin"
	RoleAdmin       = "admin"
	RoleBranchAdmin = "branch-admin"
	RoleOperations  = "operations"
)

type AppUser struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name      string              `json:"name" bson:"name"`
	Email     string              `json:"email" bson:"email"`
	Role      string              `json:"role" bson:"role"`
	Company   *primitive.ObjectID `json:"company,omitempty" bson:"company,omitempty"`
	Branch    *primitive.ObjectID `json:"branch,omitempty" bson:"branch,omitempty"`
	Password  string              `json:"password,omitempty" bson:"password_hash"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
}
