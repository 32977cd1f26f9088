package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// TransactionSortFields contains allowed sort fields for transactions
var TransactionSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"transaction_number": true,
	"transaction_date":   true,
	"amount":             true,
	"currency":           true,
	"status":             true,
}

// BudgetSortFields contains allowed sort fields for budgets
var BudgetSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"year":             true,
	"month":            true,
	"allocated_amount": true,
	"spent_amount":     true,
	"currency":         true,
}

// BranchSortFields contains allowed sort fields for branches
var BranchSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"province":   true,
}

// StaffSortFields contains allowed sort fields for staff members
var StaffSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"first_name":  true,
	"last_name":   true,
	"position":    true,
	"status":      true,
	"date_joined": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"full_name":     true,
	"role":          true,
	"status":        true,
	"last_login_at": true,
}

// GeneratedReportSortFields contains allowed sort fields for report registry rows
var GeneratedReportSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"generated_at":  true,
	"report_period": true,
	"file_size":     true,
}
