package service

import (
	"context"
	"fmt"
	"time"

	"github.com/andersvik/timetrack/internal/domain"
	"github.com/andersvik/timetrack/internal/repository"
	"github.com/google/uuid"
)

type contractService struct {
	contracts repository.ContractRepo
	customers repository.CustomerRepo
}

func NewContractService(contracts repository.ContractRepo, customers repository.CustomerRepo) ContractService {
	return &contractService{contracts: contracts, customers: customers}
}

func (s *contractService) Create(ctx context.Context, c *domain.Contract) error {
	if err := validateContract(c); err != nil {
		return err
	}
	if _, err := s.customers.GetByID(ctx, c.CustomerID); err != nil {
		return fmt.Errorf("resolving customer: %w", err)
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Currency == "" {
		c.Currency = "EUR"
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.contracts.Create(ctx, c)
}

func (s *contractService) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	return s.contracts.GetByID(ctx, id)
}

func (s *contractService) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Contract, error) {
	return s.contracts.ListByCustomer(ctx, customerID)
}

func (s *contractService) Update(ctx context.Context, c *domain.Contract) error {
	if err := validateContract(c); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	return s.contracts.Update(ctx, c)
}

func (s *contractService) Delete(ctx context.Context, id string) error {
	return s.contracts.Delete(ctx, id)
}

func validateContract(c *domain.Contract) error {
	if c.Name == "" {
		return fmt.Errorf("contract name is required")
	}
	if c.DailyRate < 0 {
		return fmt.Errorf("daily rate must not be negative")
	}
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("contract end date precedes start date")
	}
	return nil
}
