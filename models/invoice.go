package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleType string

const (
	VehicleTypeDellcube VehicleType = "Dellcube"
	VehicleTypeVendor   VehicleType = "Vendor"
)

type PaymentType string

const (
	PaymentPaid  PaymentType = "Paid"
	PaymentToPay PaymentType = "To Pay"
	PaymentTBB   PaymentType = "TBB"
)

// GeoRef ties an address to the geographic reference hierarchy. The
// hierarchy itself is managed elsewhere; these are opaque ids here.
type GeoRef struct {
	Country  *primitive.ObjectID `json:"country,omitempty" bson:"country,omitempty"`
	State    *primitive.ObjectID `json:"state,omitempty" bson:"state,omitempty"`
	City     *primitive.ObjectID `json:"city,omitempty" bson:"city,omitempty"`
	Locality *primitive.ObjectID `json:"locality,omitempty" bson:"locality,omitempty"`
	Pincode  *primitive.ObjectID `json:"pincode,omitempty" bson:"pincode,omitempty"`
}

type GeoPoint struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// DriverUpdate is one entry of the append-only trip log. Entries are never
// edited or removed once written.
type DriverUpdate struct {
	Location      *GeoPoint `json:"location,omitempty" bson:"location,omitempty"`
	Note          string    `json:"note,omitempty" bson:"note,omitempty"`
	OrderPhotoURL string    `json:"order_photo_url,omitempty" bson:"order_photo_url,omitempty"`
	Timestamp     time.Time `json:"timestamp" bson:"timestamp"`
}

type DeliveryProof struct {
	Signature      string `json:"signature,omitempty" bson:"signature,omitempty"`
	ReceiverName   string `json:"receiver_name,omitempty" bson:"receiver_name,omitempty"`
	ReceiverMobile string `json:"receiver_mobile,omitempty" bson:"receiver_mobile,omitempty"`
	Remarks        string `json:"remarks,omitempty" bson:"remarks,omitempty"`
}

// Merge applies only the supplied (non-empty) keys onto the proof, leaving
// the rest intact. Partial-update semantics are deliberate.
func (p *DeliveryProof) Merge(in DeliveryProof) {
	if in.Signature != "" {
		p.Signature = in.Signature
	}
	if in.ReceiverName != "" {
		p.ReceiverName = in.ReceiverName
	}
	if in.ReceiverMobile != "" {
		p.ReceiverMobile = in.ReceiverMobile
	}
	if in.Remarks != "" {
		p.Remarks = in.Remarks
	}
}

// Invoice is the shipment docket. DocketNumber is assigned exactly once at
// creation and never recomputed, even if company/branch/date fields change
// afterwards.
type Invoice struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DocketNumber string             `json:"docket_number" bson:"docket_number"`
	OrderNumber  string             `json:"order_number,omitempty" bson:"order_number,omitempty"`

	Company  primitive.ObjectID  `json:"company" bson:"company"`
	Branch   primitive.ObjectID  `json:"branch" bson:"branch"`
	Customer primitive.ObjectID  `json:"customer" bson:"customer"`
	SiteType *primitive.ObjectID `json:"site_type,omitempty" bson:"site_type,omitempty"`

	TransportMode *primitive.ObjectID `json:"transport_mode,omitempty" bson:"transport_mode,omitempty"`
	GoodsType     *primitive.ObjectID `json:"goods_type,omitempty" bson:"goods_type,omitempty"`

	FromAddress     GeoRef `json:"from_address" bson:"from_address"`
	ToAddress       GeoRef `json:"to_address" bson:"to_address"`
	PickupAddress   string `json:"pickup_address,omitempty" bson:"pickup_address,omitempty"`
	DeliveryAddress string `json:"delivery_address,omitempty" bson:"delivery_address,omitempty"`
	Consignor       string `json:"consignor,omitempty" bson:"consignor,omitempty"`
	Consignee       string `json:"consignee,omitempty" bson:"consignee,omitempty"`

	TotalWeight      float64 `json:"total_weight" bson:"total_weight"`
	NumberOfPackages int     `json:"number_of_packages" bson:"number_of_packages"`
	GoodsValue       float64 `json:"goods_value" bson:"goods_value"`

	// Tariff breakdown. Independent fields: Total is whatever the operator
	// entered, not a computed sum.
	RatePerKg      float64 `json:"rate_per_kg" bson:"rate_per_kg"`
	FreightRs      float64 `json:"freight_rs" bson:"freight_rs"`
	FreightCharges float64 `json:"freight_charges" bson:"freight_charges"`
	AOC            float64 `json:"aoc" bson:"aoc"`
	Hamali         float64 `json:"hamali" bson:"hamali"`
	DDCharges      float64 `json:"dd_charges" bson:"dd_charges"`
	STCharges      float64 `json:"st_charges" bson:"st_charges"`
	ServiceCharge  float64 `json:"service_charge" bson:"service_charge"`
	Paid           float64 `json:"paid" bson:"paid"`
	ToPay          float64 `json:"to_pay" bson:"to_pay"`
	TBB            float64 `json:"tbb" bson:"tbb"`
	Total          float64 `json:"total" bson:"total"`

	PaymentType PaymentType `json:"payment_type,omitempty" bson:"payment_type,omitempty"`

	VehicleType         VehicleType         `json:"vehicle_type" bson:"vehicle_type"`
	Vehicle             *primitive.ObjectID `json:"vehicle,omitempty" bson:"vehicle,omitempty"`
	Vendor              *primitive.ObjectID `json:"vendor,omitempty" bson:"vendor,omitempty"`
	VendorVehicle       *VendorVehicle      `json:"vendor_vehicle,omitempty" bson:"vendor_vehicle,omitempty"`
	Driver              *primitive.ObjectID `json:"driver,omitempty" bson:"driver,omitempty"`
	DriverContactNumber string              `json:"driver_contact_number,omitempty" bson:"driver_contact_number,omitempty"`

	Status Status `json:"status" bson:"status"`

	DriverUpdates []DriverUpdate `json:"driver_updates,omitempty" bson:"driver_updates,omitempty"`
	DeliveryProof *DeliveryProof `json:"delivery_proof,omitempty" bson:"delivery_proof,omitempty"`
	DeliveredAt   *time.Time     `json:"delivered_at,omitempty" bson:"delivered_at,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
