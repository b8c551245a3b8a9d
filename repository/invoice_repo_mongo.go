package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"dellcube/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	invoiceCollection = "invoice"
	counterCollection = "docket_counter"
)

type MongoInvoiceRepo struct {
	DB *mongo.Database
}

func NewMongoInvoiceRepo(db *mongo.Database) *MongoInvoiceRepo {
	return &MongoInvoiceRepo{DB: db}
}

// NextDocketSeq increments the per-(company,branch,day) counter document and
// returns the new value. The upsert-and-increment is a single atomic
// operation, so concurrent creates cannot observe the same sequence.
func (r *MongoInvoiceRepo) NextDocketSeq(ctx context.Context, company, branch primitive.ObjectID, day time.Time) (int64, error) {
	key := fmt.Sprintf("%s:%s:%s", company.Hex(), branch.Hex(), day.Format("060102"))

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.DB.Collection(counterCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": key},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

func (r *MongoInvoiceRepo) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	now := time.Now().UTC()
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = now
	}
	inv.UpdatedAt = now

	res, err := r.DB.Collection(invoiceCollection).InsertOne(ctx, inv)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		inv.ID = oid
	}
	return nil
}

func (r *MongoInvoiceRepo) GetInvoiceByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.DB.Collection(invoiceCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&inv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *MongoInvoiceRepo) ListInvoices(ctx context.Context, f InvoiceFilter) ([]*models.Invoice, int64, error) {
	filter := bson.M{}
	if f.Company != nil {
		filter["company"] = *f.Company
	}
	if f.Branch != nil {
		filter["branch"] = *f.Branch
	}
	if f.Customer != nil {
		filter["customer"] = *f.Customer
	}
	if f.PaymentType != "" {
		filter["payment_type"] = f.PaymentType
	}
	if f.VehicleType != "" {
		filter["vehicle_type"] = f.VehicleType
	}
	if f.Search != "" {
		filter["docket_number"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
	}
	if f.FromDate != nil || f.ToDate != nil {
		created := bson.M{}
		if f.FromDate != nil {
			created["$gte"] = *f.FromDate
		}
		if f.ToDate != nil {
			created["$lte"] = *f.ToDate
		}
		filter["created_at"] = created
	}

	coll := r.DB.Collection(invoiceCollection)
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	// Limit <= 0 disables pagination (CSV export walks the full result).
	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		findOpts.SetSkip((page - 1) * f.Limit).SetLimit(f.Limit)
	}

	cur, err := coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []*models.Invoice
	for cur.Next(ctx) {
		var inv models.Invoice
		if err := cur.Decode(&inv); err != nil {
			return nil, 0, err
		}
		out = append(out, &inv)
	}
	return out, total, cur.Err()
}

func (r *MongoInvoiceRepo) UpdateInvoice(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Invoice, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	var inv models.Invoice
	err := r.DB.Collection(invoiceCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&inv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *MongoInvoiceRepo) ReplaceInvoice(ctx context.Context, inv *models.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	res, err := r.DB.Collection(invoiceCollection).ReplaceOne(ctx, bson.M{"_id": inv.ID}, inv)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoInvoiceRepo) DeleteInvoice(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.DB.Collection(invoiceCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
