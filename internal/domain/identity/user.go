package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/schoolms/backend/internal/domain/shared"
)

// Role determines what a user may do. Only admins may mutate budgets and
// transactions or trigger report generation.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// UserStatus represents the approval state of an account
type UserStatus string

const (
	UserStatusPending     UserStatus = "pending" // signed up, awaiting approval
	UserStatusActive      UserStatus = "active"
	UserStatusDeactivated UserStatus = "deactivated"
)

// Password cost for bcrypt
const bcryptCost = 12

// User is an account that can sign in to the system
type User struct {
	shared.BaseAggregateRoot
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	Status       UserStatus
	BranchID     *uuid.UUID
	LastLoginAt  *time.Time
}

// NewUser creates a new user awaiting approval
func NewUser(email, password, fullName string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if fullName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Full name is required")
	}
	if role != RoleAdmin && role != RoleStaff {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be admin or staff")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      hash,
		FullName:          fullName,
		Role:              role,
		Status:            UserStatusPending,
	}, nil
}

// Approve activates a pending account
func (u *User) Approve() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}
	u.Status = UserStatusActive
	u.Touch()
	u.IncrementVersion()
	return nil
}

// Deactivate disables the account
func (u *User) Deactivate() error {
	if u.Status == UserStatusDeactivated {
		return shared.NewDomainError("ALREADY_DEACTIVATED", "User is already deactivated")
	}
	u.Status = UserStatusDeactivated
	u.Touch()
	u.IncrementVersion()
	return nil
}

// SetBranch assigns the user to a branch
func (u *User) SetBranch(branchID *uuid.UUID) {
	u.BranchID = branchID
	u.Touch()
}

// SetPassword sets a new password (admin reset)
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = hash
	u.Touch()
	u.IncrementVersion()
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLoginSuccess records a successful login
func (u *User) RecordLoginSuccess() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// IsAdmin returns true if the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanLogin returns true if the account is approved and not deactivated
func (u *User) CanLogin() bool {
	return u.Status == UserStatusActive
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
