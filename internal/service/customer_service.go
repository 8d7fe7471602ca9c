package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"customerhub/internal/errors"
	"customerhub/internal/model"
	"customerhub/internal/repository"
)

var errNameEmailRequired = &errors.ValidationError{Message: "Name and email are required"}

// CustomerService exposes owner-scoped customer operations.
type CustomerService interface {
	List(ctx context.Context, ownerID string) ([]model.CustomerSummary, error)
	Get(ctx context.Context, id, ownerID string) (*model.Customer, error)
	Create(ctx context.Context, input model.CustomerInput, ownerID string) (*model.Customer, error)
	Update(ctx context.Context, id string, patch model.CustomerPatch, ownerID string) (*model.Customer, error)
	Delete(ctx context.Context, id, ownerID string) error
}

type customerService struct {
	repo   repository.CustomerRepository
	logger *zap.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(repo repository.CustomerRepository, logger *zap.Logger) CustomerService {
	return &customerService{repo: repo, logger: logger}
}

func (s *customerService) List(ctx context.Context, ownerID string) ([]model.CustomerSummary, error) {
	customers, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	out := make([]model.CustomerSummary, 0, len(customers))
	for _, c := range customers {
		out = append(out, c.Summary())
	}
	return out, nil
}

func (s *customerService) Get(ctx context.Context, id, ownerID string) (*model.Customer, error) {
	customer, err := s.repo.Get(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if customer == nil {
		return nil, errors.ErrCustomerNotFound
	}
	return customer, nil
}

// Create trims every field and requires a name and an email.
func (s *customerService) Create(ctx context.Context, input model.CustomerInput, ownerID string) (*model.Customer, error) {
	input = model.CustomerInput{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Company: strings.TrimSpace(input.Company),
	}
	if input.Name == "" || input.Email == "" {
		return nil, errNameEmailRequired
	}

	customer, err := s.repo.Add(ctx, input, ownerID)
	if err != nil {
		return nil, fmt.Errorf("add customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) Update(ctx context.Context, id string, patch model.CustomerPatch, ownerID string) (*model.Customer, error) {
	customer, err := s.repo.Update(ctx, id, trimPatch(patch), ownerID)
	if err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	if customer == nil {
		s.logger.Info("update customer failed: customer not found", zap.String("user_id", ownerID), zap.String("customer_id", id))
		return nil, errors.ErrCustomerNotFound
	}
	return customer, nil
}

func (s *customerService) Delete(ctx context.Context, id, ownerID string) error {
	customer, err := s.repo.Delete(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if customer == nil {
		s.logger.Info("delete customer failed: customer not found", zap.String("user_id", ownerID), zap.String("customer_id", id))
		return errors.ErrCustomerNotFound
	}
	return nil
}

func trimPatch(p model.CustomerPatch) model.CustomerPatch {
	trim := func(v *string) *string {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		return &t
	}
	return model.CustomerPatch{
		Name:    trim(p.Name),
		Email:   trim(p.Email),
		Phone:   trim(p.Phone),
		Company: trim(p.Company),
	}
}
