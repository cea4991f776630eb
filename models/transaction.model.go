package models

import "time"

// TransactionStatus defines the status of a payment transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusRefunded  TransactionStatus = "REFUNDED"
	TransactionStatusRejected  TransactionStatus = "REJECTED"
)

// Transaction is a remote payment record, read-only from the dashboard except
// for withdrawal approve/reject admin actions
type Transaction struct {
	ID            uint              `json:"id"`
	UserID        uint              `json:"userId"`
	Amount        float64           `json:"amount"`
	PaymentMethod string            `json:"paymentMethod"` // PAYPAL, VNPAY, WALLET
	Status        TransactionStatus `json:"status"`
	CourseIDs     []uint            `json:"courseIds"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}
