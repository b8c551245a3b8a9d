package repository

import (
	"context"
	"errors"
	"time"

	"dellcube/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoPendingRepo struct {
	DB *mongo.Database
}

func NewMongoPendingRepo(db *mongo.Database) *MongoPendingRepo {
	return &MongoPendingRepo{DB: db}
}

// SavePending upserts by email: re-initiating a signup replaces the earlier
// staged entry and restarts its expiry window.
func (r *MongoPendingRepo) SavePending(ctx context.Context, p *models.PendingUser) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.Collection("pending_user").UpdateOne(ctx,
		bson.M{"email": p.Email},
		bson.M{"$set": bson.M{
			"name":       p.Name,
			"email":      p.Email,
			"role":       p.Role,
			"company":    p.Company,
			"branch":     p.Branch,
			"password":   p.Password,
			"otp":        p.OTP,
			"expires_at": p.ExpiresAt,
			"created_at": p.CreatedAt,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *MongoPendingRepo) GetPendingByEmail(ctx context.Context, email string) (*models.PendingUser, error) {
	var p models.PendingUser
	err := r.DB.Collection("pending_user").FindOne(ctx, bson.M{"email": email}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoPendingRepo) DeletePending(ctx context.Context, email string) error {
	_, err := r.DB.Collection("pending_user").DeleteOne(ctx, bson.M{"email": email})
	return err
}
