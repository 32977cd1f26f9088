package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/schoolms/backend/internal/domain/org"
)

// BranchModel is the persistence model for the Branch aggregate root.
type BranchModel struct {
	AggregateModel
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Province string `gorm:"type:varchar(100)"`
	Address  string `gorm:"type:varchar(500)"`
	Phone    string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (BranchModel) TableName() string {
	return "branches"
}

// ToDomain converts the persistence model to a domain Branch entity.
func (m *BranchModel) ToDomain() *org.Branch {
	return &org.Branch{
		BaseAggregateRoot: m.toAggregateRoot(),
		Name:              m.Name,
		Province:          m.Province,
		Address:           m.Address,
		Phone:             m.Phone,
	}
}

// FromDomain populates the persistence model from a domain Branch entity.
func (m *BranchModel) FromDomain(b *org.Branch) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.Name = b.Name
	m.Province = b.Province
	m.Address = b.Address
	m.Phone = b.Phone
}

// BranchModelFromDomain creates a new persistence model from a domain Branch.
func BranchModelFromDomain(b *org.Branch) *BranchModel {
	m := &BranchModel{}
	m.FromDomain(b)
	return m
}

// StaffModel is the persistence model for the Staff aggregate root.
type StaffModel struct {
	AggregateModel
	BranchID   *uuid.UUID      `gorm:"type:uuid;index"`
	FirstName  string          `gorm:"type:varchar(100);not null"`
	LastName   string          `gorm:"type:varchar(100)"`
	FatherName string          `gorm:"type:varchar(100)"`
	Position   string          `gorm:"type:varchar(100)"`
	Phone      string          `gorm:"type:varchar(50)"`
	Email      string          `gorm:"type:varchar(200)"`
	DateJoined *time.Time      `gorm:"index"`
	DateLeft   *time.Time
	Status     org.StaffStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	Notes      string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StaffModel) TableName() string {
	return "staff"
}

// ToDomain converts the persistence model to a domain Staff entity.
func (m *StaffModel) ToDomain() *org.Staff {
	return &org.Staff{
		BaseAggregateRoot: m.toAggregateRoot(),
		BranchID:          m.BranchID,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		FatherName:        m.FatherName,
		Position:          m.Position,
		Phone:             m.Phone,
		Email:             m.Email,
		DateJoined:        m.DateJoined,
		DateLeft:          m.DateLeft,
		Status:            m.Status,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Staff entity.
func (m *StaffModel) FromDomain(s *org.Staff) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.BranchID = s.BranchID
	m.FirstName = s.FirstName
	m.LastName = s.LastName
	m.FatherName = s.FatherName
	m.Position = s.Position
	m.Phone = s.Phone
	m.Email = s.Email
	m.DateJoined = s.DateJoined
	m.DateLeft = s.DateLeft
	m.Status = s.Status
	m.Notes = s.Notes
}

// StaffModelFromDomain creates a new persistence model from a domain Staff.
func StaffModelFromDomain(s *org.Staff) *StaffModel {
	m := &StaffModel{}
	m.FromDomain(s)
	return m
}
