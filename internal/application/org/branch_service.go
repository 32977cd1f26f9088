package org

import (
	"context"

	"github.com/google/uuid"

	"github.com/schoolms/backend/internal/domain/org"
	"github.com/schoolms/backend/internal/domain/shared"
)

// BranchService handles branch management
type BranchService struct {
	branchRepo org.BranchRepository
}

// NewBranchService creates a new BranchService
func NewBranchService(branchRepo org.BranchRepository) *BranchService {
	return &BranchService{branchRepo: branchRepo}
}

// Create registers a branch
func (s *BranchService) Create(ctx context.Context, req CreateBranchRequest) (*BranchResponse, error) {
	branch, err := org.NewBranch(req.Name, req.Province, req.Address, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}
	response := ToBranchResponse(branch)
	return &response, nil
}

// GetByID retrieves a branch
func (s *BranchService) GetByID(ctx context.Context, id uuid.UUID) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToBranchResponse(branch)
	return &response, nil
}

// List retrieves branches ordered by name
func (s *BranchService) List(ctx context.Context, filter shared.Filter) ([]BranchResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
		filter.OrderDir = "asc"
	}

	branches, err := s.branchRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.branchRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BranchResponse, len(branches))
	for i, branch := range branches {
		responses[i] = ToBranchResponse(branch)
	}
	return responses, total, nil
}

// Update changes branch details
func (s *BranchService) Update(ctx context.Context, id uuid.UUID, req UpdateBranchRequest) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := branch.Update(req.Name, req.Province, req.Address, req.Phone); err != nil {
		return nil, err
	}
	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}
	response := ToBranchResponse(branch)
	return &response, nil
}

// Delete removes a branch
func (s *BranchService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.branchRepo.Delete(ctx, id)
}
