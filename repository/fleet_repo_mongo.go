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

type MongoFleetRepo struct {
	DB *mongo.Database
}

func NewMongoFleetRepo(db *mongo.Database) *MongoFleetRepo {
	return &MongoFleetRepo{DB: db}
}

func scopeFilter(company, branch *primitive.ObjectID) bson.M {
	filter := bson.M{}
	if company != nil {
		filter["company"] = *company
	}
	if branch != nil {
		filter["branch"] = *branch
	}
	return filter
}

func (r *MongoFleetRepo) CreateVehicle(ctx context.Context, v *models.Vehicle) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	res, err := r.DB.Collection("vehicle").InsertOne(ctx, v)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		v.ID = oid
	}
	return nil
}

func (r *MongoFleetRepo) GetVehicleByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := r.DB.Collection("vehicle").FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *MongoFleetRepo) ListVehicles(ctx context.Context, company, branch *primitive.ObjectID) ([]*models.Vehicle, error) {
	cur, err := r.DB.Collection("vehicle").Find(ctx, scopeFilter(company, branch))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Vehicle
	for cur.Next(ctx) {
		var v models.Vehicle
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}

func (r *MongoFleetRepo) CreateDriver(ctx context.Context, d *models.Driver) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	res, err := r.DB.Collection("driver").InsertOne(ctx, d)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		d.ID = oid
	}
	return nil
}

func (r *MongoFleetRepo) GetDriverByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	var d models.Driver
	if err := r.DB.Collection("driver").FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *MongoFleetRepo) ListDrivers(ctx context.Context, company, branch *primitive.ObjectID) ([]*models.Driver, error) {
	cur, err := r.DB.Collection("driver").Find(ctx, scopeFilter(company, branch))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Driver
	for cur.Next(ctx) {
		var d models.Driver
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, cur.Err()
}
