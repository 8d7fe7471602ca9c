package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"customerhub/internal/model"
	"customerhub/internal/store"
)

type customersByOwner = map[string][]model.Customer

// CustomerRepository defines owner-scoped persistence operations for customers.
// Lookups that find nothing return nil, nil.
type CustomerRepository interface {
	List(ctx context.Context, ownerID string) ([]model.Customer, error)
	Get(ctx context.Context, id, ownerID string) (*model.Customer, error)
	Add(ctx context.Context, input model.CustomerInput, ownerID string) (*model.Customer, error)
	Update(ctx context.Context, id string, patch model.CustomerPatch, ownerID string) (*model.Customer, error)
	Delete(ctx context.Context, id, ownerID string) (*model.Customer, error)
}

type customerRepository struct {
	doc *store.Document[customersByOwner]
	now func() time.Time
}

// NewCustomerRepository builds a repository over the customers document.
func NewCustomerRepository(s *store.FileStore, document string) CustomerRepository {
	return &customerRepository{
		doc: store.NewDocument(s, document, func() customersByOwner { return customersByOwner{} }),
		now: time.Now,
	}
}

func indexOf(customers []model.Customer, id string) int {
	for i := range customers {
		if customers[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *customerRepository) List(ctx context.Context, ownerID string) ([]model.Customer, error) {
	all, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	if customers := all[ownerID]; customers != nil {
		return customers, nil
	}
	return []model.Customer{}, nil
}

func (r *customerRepository) Get(ctx context.Context, id, ownerID string) (*model.Customer, error) {
	all, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	customers := all[ownerID]
	if i := indexOf(customers, id); i >= 0 {
		return &customers[i], nil
	}
	return nil, nil
}

func (r *customerRepository) Add(ctx context.Context, input model.CustomerInput, ownerID string) (*model.Customer, error) {
	customer := model.Customer{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Company:   input.Company,
		CreatedAt: r.now().UTC(),
	}

	err := r.doc.Update(ctx, func(all customersByOwner) (customersByOwner, error) {
		all[ownerID] = append(all[ownerID], customer)
		return all, nil
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Update(ctx context.Context, id string, patch model.CustomerPatch, ownerID string) (*model.Customer, error) {
	var updated *model.Customer
	err := r.doc.Update(ctx, func(all customersByOwner) (customersByOwner, error) {
		customers := all[ownerID]
		i := indexOf(customers, id)
		if i < 0 {
			return all, store.ErrNoChange
		}
		c := customers[i]
		patch.Apply(&c)
		now := r.now().UTC()
		c.UpdatedAt = &now
		customers[i] = c
		updated = &c
		return all, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *customerRepository) Delete(ctx context.Context, id, ownerID string) (*model.Customer, error) {
	var removed *model.Customer
	err := r.doc.Update(ctx, func(all customersByOwner) (customersByOwner, error) {
		customers := all[ownerID]
		i := indexOf(customers, id)
		if i < 0 {
			return all, store.ErrNoChange
		}
		c := customers[i]
		removed = &c
		all[ownerID] = append(customers[:i], customers[i+1:]...)
		return all, nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}
