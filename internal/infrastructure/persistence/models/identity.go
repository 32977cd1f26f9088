package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/schoolms/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User aggregate root.
type UserModel struct {
	AggregateModel
	Email        string              `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string              `gorm:"type:varchar(200);not null"`
	FullName     string              `gorm:"type:varchar(200);not null"`
	Role         identity.Role       `gorm:"type:varchar(20);not null;index"`
	Status       identity.UserStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	BranchID     *uuid.UUID          `gorm:"type:uuid;index"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.toAggregateRoot(),
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		FullName:          m.FullName,
		Role:              m.Role,
		Status:            m.Status,
		BranchID:          m.BranchID,
		LastLoginAt:       m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.FullName = u.FullName
	m.Role = u.Role
	m.Status = u.Status
	m.BranchID = u.BranchID
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
