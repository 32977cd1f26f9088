package org

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/schoolms/backend/internal/domain/shared"
)

// StaffStatus is the employment state of a staff member
type StaffStatus string

const (
	StaffStatusActive   StaffStatus = "active"
	StaffStatusInactive StaffStatus = "inactive"
)

// Staff is an employee assigned to a branch. Staff members appear as
// senders and receivers on transactions.
type Staff struct {
	shared.BaseAggregateRoot
	BranchID   *uuid.UUID
	FirstName  string
	LastName   string
	FatherName string
	Position   string
	Phone      string
	Email      string
	DateJoined *time.Time
	DateLeft   *time.Time
	Status     StaffStatus
	Notes      string
}

// NewStaff creates a new active staff member
func NewStaff(firstName, lastName, position string, branchID *uuid.UUID) (*Staff, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}

	return &Staff{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BranchID:          branchID,
		FirstName:         firstName,
		LastName:          lastName,
		Position:          position,
		Status:            StaffStatusActive,
	}, nil
}

// FullName returns the display name used on reports
func (s *Staff) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// AssignBranch moves the staff member to another branch
func (s *Staff) AssignBranch(branchID *uuid.UUID) {
	s.BranchID = branchID
	s.Touch()
	s.IncrementVersion()
}

// MarkLeft records the departure date and deactivates the staff member
func (s *Staff) MarkLeft(dateLeft time.Time) error {
	if s.Status == StaffStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Staff member is already inactive")
	}
	s.DateLeft = &dateLeft
	s.Status = StaffStatusInactive
	s.Touch()
	s.IncrementVersion()
	return nil
}
