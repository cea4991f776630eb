package services

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"edudash/endpoints"
	"edudash/models"
	"edudash/upstream"
)

// PaymentService exposes the dashboard's read view of payment transactions
// plus the two withdrawal admin actions
type PaymentService struct {
	api           *upstream.Client
	notifications *NotificationService
}

// NewPaymentService creates a PaymentService
func NewPaymentService(api *upstream.Client, notifications *NotificationService) *PaymentService {
	return &PaymentService{api: api, notifications: notifications}
}

// ListTransactions returns one page of transactions, optionally filtered by
// status and payment method
func (s *PaymentService) ListTransactions(ctx context.Context, page, size int, status, method string) (models.Page[models.Transaction], error) {
	path, err := endpoints.Build("transactions.list", nil)
	if err != nil {
		return models.EmptyPage[models.Transaction](), err
	}

	query := pageQuery(page, size)
	if status != "" {
		query["status"] = status
	}
	if method != "" {
		query["method"] = method
	}

	result := models.EmptyPage[models.Transaction]()
	if err := s.api.Get(ctx, path, query, &result); err != nil {
		log.Printf("Failed to fetch transactions: %v", err)
		return models.EmptyPage[models.Transaction](), err
	}
	if result.Content == nil {
		result.Content = []models.Transaction{}
	}
	return result, nil
}

// GetTransaction returns one transaction
func (s *PaymentService) GetTransaction(ctx context.Context, id uint) (models.Transaction, error) {
	path, err := endpoints.Build("transactions.get", map[string]string{"id": strconv.FormatUint(uint64(id), 10)})
	if err != nil {
		return models.Transaction{}, err
	}

	var txn models.Transaction
	if err := s.api.Get(ctx, path, nil, &txn); err != nil {
		return models.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return txn, nil
}

// ApproveWithdrawal approves a pending withdrawal and notifies the wallet
// owner. The notification failure never fails the approval.
func (s *PaymentService) ApproveWithdrawal(ctx context.Context, id uint) error {
	path, err := endpoints.Build("withdrawals.approve", map[string]string{"id": strconv.FormatUint(uint64(id), 10)})
	if err != nil {
		return err
	}

	var txn models.Transaction
	if err := s.api.Put(ctx, path, nil, &txn); err != nil {
		return fmt.Errorf("approve withdrawal %d: %w", id, err)
	}

	if _, nerr := s.notifications.Send(ctx, txn.UserID, "Your withdrawal request has been approved.", "WITHDRAWAL"); nerr != nil {
		log.Printf("Approval notification for withdrawal %d failed: %v", id, nerr)
	}
	return nil
}

// RejectWithdrawal rejects a pending withdrawal with a reason and notifies
// the wallet owner. The notification failure never fails the rejection.
func (s *PaymentService) RejectWithdrawal(ctx context.Context, id uint, reason string) error {
	path, err := endpoints.Build("withdrawals.reject", map[string]string{"id": strconv.FormatUint(uint64(id), 10)})
	if err != nil {
		return err
	}

	var txn models.Transaction
	if err := s.api.Put(ctx, path, map[string]string{"reason": reason}, &txn); err != nil {
		return fmt.Errorf("reject withdrawal %d: %w", id, err)
	}

	content := "Your withdrawal request has been rejected."
	if reason != "" {
		content += " Reason: " + reason
	}
	if _, nerr := s.notifications.Send(ctx, txn.UserID, content, "WITHDRAWAL"); nerr != nil {
		log.Printf("Rejection notification for withdrawal %d failed: %v", id, nerr)
	}
	return nil
}
