package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dellcube/models"
	"dellcube/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes backing the handler tests.

type fakeInvoiceRepo struct {
	invoices map[primitive.ObjectID]*models.Invoice
	order    []primitive.ObjectID
	seqs     map[string]int64
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[primitive.ObjectID]*models.Invoice),
		seqs:     make(map[string]int64),
	}
}

func cloneInvoice(inv *models.Invoice) *models.Invoice {
	c := *inv
	c.DriverUpdates = append([]models.DriverUpdate(nil), inv.DriverUpdates...)
	if inv.DeliveryProof != nil {
		proof := *inv.DeliveryProof
		c.DeliveryProof = &proof
	}
	if inv.VendorVehicle != nil {
		vv := *inv.VendorVehicle
		c.VendorVehicle = &vv
	}
	return &c
}

func (r *fakeInvoiceRepo) NextDocketSeq(_ context.Context, company, branch primitive.ObjectID, day time.Time) (int64, error) {
	key := fmt.Sprintf("%s:%s:%s", company.Hex(), branch.Hex(), day.Format("060102"))
	r.seqs[key]++
	return r.seqs[key], nil
}

func (r *fakeInvoiceRepo) CreateInvoice(_ context.Context, inv *models.Invoice) error {
	inv.ID = primitive.NewObjectID()
	r.invoices[inv.ID] = cloneInvoice(inv)
	r.order = append(r.order, inv.ID)
	return nil
}

func (r *fakeInvoiceRepo) GetInvoiceByID(_ context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneInvoice(inv), nil
}

func (r *fakeInvoiceRepo) ListInvoices(_ context.Context, f repository.InvoiceFilter) ([]*models.Invoice, int64, error) {
	var matched []*models.Invoice
	for _, id := range r.order {
		inv := r.invoices[id]
		if f.Company != nil && inv.Company != *f.Company {
			continue
		}
		if f.Branch != nil && inv.Branch != *f.Branch {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(inv.DocketNumber), strings.ToLower(f.Search)) {
			continue
		}
		matched = append(matched, cloneInvoice(inv))
	}
	total := int64(len(matched))
	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * f.Limit
		if start > total {
			start = total
		}
		end := start + f.Limit
		if end > total {
			end = total
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func (r *fakeInvoiceRepo) UpdateInvoice(_ context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "status":
			inv.Status = v.(models.Status)
		case "consignee":
			inv.Consignee = v.(string)
		case "consignor":
			inv.Consignor = v.(string)
		case "order_number":
			inv.OrderNumber = v.(string)
		case "total":
			inv.Total = v.(float64)
		case "vendor_vehicle":
			vv := v.(models.VendorVehicle)
			inv.VendorVehicle = &vv
		}
	}
	inv.UpdatedAt = time.Now().UTC()
	return cloneInvoice(inv), nil
}

func (r *fakeInvoiceRepo) ReplaceInvoice(_ context.Context, inv *models.Invoice) error {
	if _, ok := r.invoices[inv.ID]; !ok {
		return repository.ErrNotFound
	}
	r.invoices[inv.ID] = cloneInvoice(inv)
	return nil
}

func (r *fakeInvoiceRepo) DeleteInvoice(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.invoices[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.invoices, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakePartyRepo struct {
	companies map[primitive.ObjectID]*models.Company
	branches  map[primitive.ObjectID]*models.Branch
	customers map[primitive.ObjectID]*models.Customer
}

func newFakePartyRepo() *fakePartyRepo {
	return &fakePartyRepo{
		companies: make(map[primitive.ObjectID]*models.Company),
		branches:  make(map[primitive.ObjectID]*models.Branch),
		customers: make(map[primitive.ObjectID]*models.Customer),
	}
}

func (r *fakePartyRepo) CreateCompany(_ context.Context, c *models.Company) error {
	c.ID = primitive.NewObjectID()
	r.companies[c.ID] = c
	return nil
}

func (r *fakePartyRepo) GetCompanyByID(_ context.Context, id primitive.ObjectID) (*models.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (r *fakePartyRepo) ListCompanies(_ context.Context) ([]*models.Company, error) {
	var out []*models.Company
	for _, c := range r.companies {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakePartyRepo) CreateBranch(_ context.Context, b *models.Branch) error {
	b.ID = primitive.NewObjectID()
	r.branches[b.ID] = b
	return nil
}

func (r *fakePartyRepo) GetBranchByID(_ context.Context, id primitive.ObjectID) (*models.Branch, error) {
	b, ok := r.branches[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (r *fakePartyRepo) ListBranches(_ context.Context, company *primitive.ObjectID) ([]*models.Branch, error) {
	var out []*models.Branch
	for _, b := range r.branches {
		if company != nil && b.Company != *company {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakePartyRepo) CreateCustomer(_ context.Context, c *models.Customer) error {
	c.ID = primitive.NewObjectID()
	r.customers[c.ID] = c
	return nil
}

func (r *fakePartyRepo) GetCustomerByID(_ context.Context, id primitive.ObjectID) (*models.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (r *fakePartyRepo) ListCustomers(_ context.Context, company *primitive.ObjectID) ([]*models.Customer, error) {
	var out []*models.Customer
	for _, c := range r.customers {
		if company != nil && c.Company != *company {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type fakeFleetRepo struct {
	vehicles map[primitive.ObjectID]*models.Vehicle
	drivers  map[primitive.ObjectID]*models.Driver
}

func newFakeFleetRepo() *fakeFleetRepo {
	return &fakeFleetRepo{
		vehicles: make(map[primitive.ObjectID]*models.Vehicle),
		drivers:  make(map[primitive.ObjectID]*models.Driver),
	}
}

func (r *fakeFleetRepo) CreateVehicle(_ context.Context, v *models.Vehicle) error {
	v.ID = primitive.NewObjectID()
	r.vehicles[v.ID] = v
	return nil
}

func (r *fakeFleetRepo) GetVehicleByID(_ context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return v, nil
}

func (r *fakeFleetRepo) ListVehicles(_ context.Context, company, branch *primitive.ObjectID) ([]*models.Vehicle, error) {
	var out []*models.Vehicle
	for _, v := range r.vehicles {
		if company != nil && v.Company != *company {
			continue
		}
		if branch != nil && v.Branch != *branch {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *fakeFleetRepo) CreateDriver(_ context.Context, d *models.Driver) error {
	d.ID = primitive.NewObjectID()
	r.drivers[d.ID] = d
	return nil
}

func (r *fakeFleetRepo) GetDriverByID(_ context.Context, id primitive.ObjectID) (*models.Driver, error) {
	d, ok := r.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return d, nil
}

func (r *fakeFleetRepo) ListDrivers(_ context.Context, company, branch *primitive.ObjectID) ([]*models.Driver, error) {
	var out []*models.Driver
	for _, d := range r.drivers {
		if company != nil && d.Company != *company {
			continue
		}
		if branch != nil && d.Branch != *branch {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

type fakeVendorRepo struct {
	vendors map[primitive.ObjectID]*models.Vendor
}

func newFakeVendorRepo() *fakeVendorRepo {
	return &fakeVendorRepo{vendors: make(map[primitive.ObjectID]*models.Vendor)}
}

func (r *fakeVendorRepo) CreateVendor(_ context.Context, v *models.Vendor) error {
	v.ID = primitive.NewObjectID()
	r.vendors[v.ID] = v
	return nil
}

func (r *fakeVendorRepo) GetVendorByID(_ context.Context, id primitive.ObjectID) (*models.Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return v, nil
}

func (r *fakeVendorRepo) ListVendors(_ context.Context, company *primitive.ObjectID) ([]*models.Vendor, error) {
	var out []*models.Vendor
	for _, v := range r.vendors {
		if company != nil && v.Company != *company {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

type fakeUserRepo struct {
	byEmail map[string]*models.AppUser
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*models.AppUser)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.AppUser) error {
	user.ID = primitive.NewObjectID()
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.AppUser, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

type fakePendingRepo struct {
	byEmail map[string]*models.PendingUser
}

func newFakePendingRepo() *fakePendingRepo {
	return &fakePendingRepo{byEmail: make(map[string]*models.PendingUser)}
}

func (r *fakePendingRepo) SavePending(_ context.Context, p *models.PendingUser) error {
	r.byEmail[p.Email] = p
	return nil
}

func (r *fakePendingRepo) GetPendingByEmail(_ context.Context, email string) (*models.PendingUser, error) {
	p, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (r *fakePendingRepo) DeletePending(_ context.Context, email string) error {
	delete(r.byEmail, email)
	return nil
}
