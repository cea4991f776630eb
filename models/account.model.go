package models

import "time"

// AccountStatus defines the lifecycle state of a marketplace account
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusInactive  AccountStatus = "INACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
	AccountStatusClosed    AccountStatus = "CLOSED"
	AccountStatusPending   AccountStatus = "PENDING"
	AccountStatusBanned    AccountStatus = "BANNED"
	AccountStatusRejected  AccountStatus = "REJECTED"
)

// ValidAccountStatus reports whether s is one of the statuses the upstream accepts
func ValidAccountStatus(s string) bool {
	switch AccountStatus(s) {
	case AccountStatusActive, AccountStatusInactive, AccountStatusSuspended,
		AccountStatusClosed, AccountStatusPending, AccountStatusBanned, AccountStatusRejected:
		return true
	}
	return false
}

// Account is a remote marketplace account record
type Account struct {
	ID        uint          `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Roles     []string      `json:"roles"`
	Status    AccountStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}
