package org

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/schoolms/backend/internal/domain/org"
	"github.com/schoolms/backend/internal/domain/shared"
)

// StaffService handles staff management
type StaffService struct {
	staffRepo org.StaffRepository
}

// NewStaffService creates a new StaffService
func NewStaffService(staffRepo org.StaffRepository) *StaffService {
	return &StaffService{staffRepo: staffRepo}
}

// Create registers a staff member
func (s *StaffService) Create(ctx context.Context, req CreateStaffRequest) (*StaffResponse, error) {
	member, err := org.NewStaff(req.FirstName, req.LastName, req.Position, req.BranchID)
	if err != nil {
		return nil, err
	}

	member.FatherName = req.FatherName
	member.Phone = req.Phone
	member.Email = req.Email
	member.Notes = req.Notes
	if req.DateJoined != nil {
		member.DateJoined = req.DateJoined
	} else {
		now := time.Now()
		member.DateJoined = &now
	}

	if err := s.staffRepo.Save(ctx, member); err != nil {
		return nil, err
	}
	response := ToStaffResponse(member)
	return &response, nil
}

// GetByID retrieves a staff member
func (s *StaffService) GetByID(ctx context.Context, id uuid.UUID) (*StaffResponse, error) {
	member, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToStaffResponse(member)
	return &response, nil
}

// List retrieves staff with filtering and pagination
func (s *StaffService) List(ctx context.Context, filter StaffListFilter) ([]StaffResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "last_name"
		filter.OrderDir = "asc"
	}

	domainFilter := org.StaffFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
		BranchID: filter.BranchID,
		Status:   org.StaffStatus(filter.Status),
	}

	staff, err := s.staffRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.staffRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]StaffResponse, len(staff))
	for i, member := range staff {
		responses[i] = ToStaffResponse(member)
	}
	return responses, total, nil
}

// Update changes staff details. Setting date_left marks the member inactive.
func (s *StaffService) Update(ctx context.Context, id uuid.UUID, req UpdateStaffRequest) (*StaffResponse, error) {
	member, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.BranchID != nil {
		member.AssignBranch(req.BranchID)
	}
	if req.FatherName != nil {
		member.FatherName = *req.FatherName
	}
	if req.Position != nil {
		member.Position = *req.Position
	}
	if req.Phone != nil {
		member.Phone = *req.Phone
	}
	if req.Email != nil {
		member.Email = *req.Email
	}
	if req.Notes != nil {
		member.Notes = *req.Notes
	}
	if req.DateLeft != nil {
		if err := member.MarkLeft(*req.DateLeft); err != nil {
			return nil, err
		}
	}

	if err := s.staffRepo.Save(ctx, member); err != nil {
		return nil, err
	}
	response := ToStaffResponse(member)
	return &response, nil
}

// Delete removes a staff member
func (s *StaffService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.staffRepo.Delete(ctx, id)
}
