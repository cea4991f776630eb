package models

// WalletStatus defines the status of an instructor wallet
type WalletStatus string

const (
	WalletStatusActive WalletStatus = "ACTIVE"
	WalletStatusFrozen WalletStatus = "FROZEN"
	WalletStatusClosed WalletStatus = "CLOSED"
)

// Wallet is a remote wallet record
type Wallet struct {
	ID       uint         `json:"id"`
	UserID   uint         `json:"userId"`
	Balance  float64      `json:"balance"`
	Status   WalletStatus `json:"status"`
	MaxLimit *float64     `json:"maxLimit,omitempty"`
}
