package org

import (
	"strings"

	"github.com/schoolms/backend/internal/domain/shared"
)

// Branch is a physical location of the organization. Transactions move
// funds between branches and budgets are allocated per branch.
type Branch struct {
	shared.BaseAggregateRoot
	Name     string
	Province string
	Address  string
	Phone    string
}

// NewBranch creates a new branch
func NewBranch(name, province, address, phone string) (*Branch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Branch name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Branch name cannot exceed 100 characters")
	}

	return &Branch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Province:          province,
		Address:           address,
		Phone:             phone,
	}, nil
}

// Update modifies the branch details
func (b *Branch) Update(name, province, address, phone string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Branch name cannot be empty")
	}
	b.Name = name
	b.Province = province
	b.Address = address
	b.Phone = phone
	b.Touch()
	b.IncrementVersion()
	return nil
}
