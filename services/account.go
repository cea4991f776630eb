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

// AccountService translates admin account operations into upstream calls
type AccountService struct {
	api           *upstream.Client
	notifications *NotificationService
}

// NewAccountService creates an AccountService
func NewAccountService(api *upstream.Client, notifications *NotificationService) *AccountService {
	return &AccountService{api: api, notifications: notifications}
}

// ListAccounts returns one page of accounts, optionally filtered by status
func (s *AccountService) ListAccounts(ctx context.Context, page, size int, status string) (models.Page[models.Account], error) {
	path, err := endpoints.Build("accounts.list", nil)
	if err != nil {
		return models.EmptyPage[models.Account](), err
	}

	query := pageQuery(page, size)
	if status != "" {
		query["status"] = status
	}

	result := models.EmptyPage[models.Account]()
	if err := s.api.Get(ctx, path, query, &result); err != nil {
		log.Printf("Failed to fetch accounts: %v", err)
		return models.EmptyPage[models.Account](), err
	}
	if result.Content == nil {
		result.Content = []models.Account{}
	}
	return result, nil
}

// SearchAccounts returns accounts matching the term by username or email
func (s *AccountService) SearchAccounts(ctx context.Context, term string) ([]models.Account, error) {
	path, err := endpoints.Build("accounts.search", nil)
	if err != nil {
		return []models.Account{}, err
	}

	accounts := []models.Account{}
	if err := s.api.Get(ctx, path, map[string]string{"q": term}, &accounts); err != nil {
		log.Printf("Failed to search accounts: %v", err)
		return []models.Account{}, err
	}
	return accounts, nil
}

// GetAccount returns one account
func (s *AccountService) GetAccount(ctx context.Context, id uint) (models.Account, error) {
	path, err := endpoints.Build("accounts.get", map[string]string{"id": strconv.FormatUint(uint64(id), 10)})
	if err != nil {
		return models.Account{}, err
	}

	var account models.Account
	if err := s.api.Get(ctx, path, nil, &account); err != nil {
		return models.Account{}, fmt.Errorf("get account %d: %w", id, err)
	}
	return account, nil
}

// UpdateAccountStatus changes an account's status and notifies the account
// owner. The notification is a secondary effect: its failure is logged but
// never fails the status change.
func (s *AccountService) UpdateAccountStatus(ctx context.Context, id uint, status string) error {
	if !models.ValidAccountStatus(status) {
		return fmt.Errorf("invalid account status: %s", status)
	}

	path, err := endpoints.Build("accounts.updateStatus", map[string]string{"id": strconv.FormatUint(uint64(id), 10)})
	if err != nil {
		return err
	}
	if err := s.api.Put(ctx, path, map[string]string{"status": status}, nil); err != nil {
		return fmt.Errorf("update status of account %d: %w", id, err)
	}

	content := fmt.Sprintf("Your account status has been changed to %s.", status)
	if _, nerr := s.notifications.Send(ctx, id, content, "ACCOUNT_STATUS"); nerr != nil {
		log.Printf("Status notification for account %d failed: %v", id, nerr)
	}
	return nil
}
