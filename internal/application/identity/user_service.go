package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/schoolms/backend/internal/domain/identity"
	"github.com/schoolms/backend/internal/domain/shared"
)

// UserService handles admin account management
type UserService struct {
	userRepo identity.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Create provisions an account. Admin-created accounts skip the pending
// state and are active immediately.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	if existing, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	user, err := identity.NewUser(req.Email, req.Password, req.FullName, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if err := user.Approve(); err != nil {
		return nil, err
	}
	user.SetBranch(req.BranchID)

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves an account
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves accounts with pagination
func (s *UserService) List(ctx context.Context, filter shared.Filter) ([]UserResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses, total, nil
}

// Update changes branch assignment or activation status
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.BranchID != nil {
		user.SetBranch(req.BranchID)
	}
	if req.Status != nil && identity.UserStatus(*req.Status) != user.Status {
		switch identity.UserStatus(*req.Status) {
		case identity.UserStatusActive:
			if err := user.Approve(); err != nil {
				return nil, err
			}
		case identity.UserStatusDeactivated:
			if err := user.Deactivate(); err != nil {
				return nil, err
			}
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// Delete removes an account
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.userRepo.Delete(ctx, id)
}
