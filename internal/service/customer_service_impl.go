package service

import (
	"context"
	"fmt"
	"time"

	"github.com/andersvik/timetrack/internal/domain"
	"github.com/andersvik/timetrack/internal/repository"
	"github.com/google/uuid"
)

type customerService struct {
	customers repository.CustomerRepo
}

func NewCustomerService(customers repository.CustomerRepo) CustomerService {
	return &customerService{customers: customers}
}

func (s *customerService) Create(ctx context.Context, c *domain.Customer) error {
	if c.Name == "" {
		return fmt.Errorf("customer name is required")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.customers.Create(ctx, c)
}

func (s *customerService) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

func (s *customerService) List(ctx context.Context, includeArchived bool) ([]*domain.Customer, error) {
	return s.customers.List(ctx, includeArchived)
}

func (s *customerService) Update(ctx context.Context, c *domain.Customer) error {
	if c.Name == "" {
		return fmt.Errorf("customer name is required")
	}
	c.UpdatedAt = time.Now().UTC()
	return s.customers.Update(ctx, c)
}

func (s *customerService) Archive(ctx context.Context, id string) error {
	return s.customers.Archive(ctx, id)
}

func (s *customerService) Delete(ctx context.Context, id string) error {
	return s.customers.Delete(ctx, id)
}
