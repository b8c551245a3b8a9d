package repository

import (
	"context"
	"errors"
	"time"

	"dellcube/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoVendorRepo struct {
	DB *mongo.Database
}

func NewMongoVendorRepo(db *mongo.Database) *MongoVendorRepo {
	return &MongoVendorRepo{DB: db}
}

func (r *MongoVendorRepo) CreateVendor(ctx context.Context, v *models.Vendor) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	res, err := r.DB.Collection("vendor").InsertOne(ctx, v)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		v.ID = oid
	}
	return nil
}

func (r *MongoVendorRepo) GetVendorByID(ctx context.Context, id primitive.ObjectID) (*models.Vendor, error) {
	var v models.Vendor
	if err := r.DB.Collection("vendor").FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *MongoVendorRepo) ListVendors(ctx context.Context, company *primitive.ObjectID) ([]*models.Vendor, error) {
	filter := bson.M{}
	if company != nil {
		filter["company"] = *company
	}
	cur, err := r.DB.Collection("vendor").Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Vendor
	for cur.Next(ctx) {
		var v models.Vendor
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}
