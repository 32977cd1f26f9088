package ledger

// TransactionStatus represents the lifecycle state of a money transfer
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusConfirmed TransactionStatus = "confirmed"
	StatusCancelled TransactionStatus = "cancelled"
)

// IsValid checks whether the status is one of the known lifecycle states
func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// CountsTowardBudget reports whether a transaction in this status
// contributes to the destination branch budget
func (s TransactionStatus) CountsTowardBudget() bool {
	return s == StatusConfirmed
}

// CanTransitionTo reports whether the manual toggle allows moving to target.
// Only pending<->confirmed is reachable through the toggle; cancellation is a
// terminal administrative state.
func (s TransactionStatus) CanTransitionTo(target TransactionStatus) bool {
	switch s {
	case StatusPending:
		return target == StatusConfirmed
	case StatusConfirmed:
		return target == StatusPending
	}
	return false
}
