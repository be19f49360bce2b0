package service

import (
	"context"
	"fmt"
	"time"

	"github.com/andersvik/timetrack/internal/domain"
	"github.com/andersvik/timetrack/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects  repository.ProjectRepo
	contracts repository.ContractRepo
}

func NewProjectService(projects repository.ProjectRepo, contracts repository.ContractRepo) ProjectService {
	return &projectService{projects: projects, contracts: contracts}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if err := s.checkContractOwnership(ctx, p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Project, error) {
	return s.projects.ListByCustomer(ctx, customerID)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	if err := s.checkContractOwnership(ctx, p); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.projects.Update(ctx, p)
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}

// A project may only be billed under a contract of its own customer.
func (s *projectService) checkContractOwnership(ctx context.Context, p *domain.Project) error {
	if !p.HasContract() {
		return nil
	}
	contract, err := s.contracts.GetByID(ctx, *p.ContractID)
	if err != nil {
		return fmt.Errorf("resolving contract: %w", err)
	}
	if contract.CustomerID != p.CustomerID {
		return fmt.Errorf("contract %s belongs to a different customer", contract.ID)
	}
	return nil
}
