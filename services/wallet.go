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

// WalletService exposes the dashboard's wallet admin operations
type WalletService struct {
	api *upstream.Client
}

// NewWalletService creates a WalletService
func NewWalletService(api *upstream.Client) *WalletService {
	return &WalletService{api: api}
}

// ListWallets returns one page of wallets
func (s *WalletService) ListWallets(ctx context.Context, page, size int, status string) (models.Page[models.Wallet], error) {
	path, err := endpoints.Build("wallets.list", nil)
	if err != nil {
		return models.EmptyPage[models.Wallet](), err
	}

	query := pageQuery(page, size)
	if status != "" {
		query["status"] = status
	}

	result := models.EmptyPage[models.Wallet]()
	if err := s.api.Get(ctx, path, query, &result); err != nil {
		log.Printf("Failed to fetch wallets: %v", err)
		return models.EmptyPage[models.Wallet](), err
	}
	if result.Content == nil {
		result.Content = []models.Wallet{}
	}
	return result, nil
}

// GetWalletByUser returns the wallet of one user
func (s *WalletService) GetWalletByUser(ctx context.Context, userID uint) (models.Wallet, error) {
	path, err := endpoints.Build("wallets.byUser", userParam(userID))
	if err != nil {
		return models.Wallet{}, err
	}

	var wallet models.Wallet
	if err := s.api.Get(ctx, path, nil, &wallet); err != nil {
		return models.Wallet{}, fmt.Errorf("get wallet of user %d: %w", userID, err)
	}
	return wallet, nil
}

// SetWalletStatus changes a wallet's status
func (s *WalletService) SetWalletStatus(ctx context.Context, id uint, status string) error {
	path, err := endpoints.Build("wallets.setStatus", map[string]string{"id": strconv.FormatUint(uint64(id), 10)})
	if err != nil {
		return err
	}
	if err := s.api.Put(ctx, path, map[string]string{"status": status}, nil); err != nil {
		return fmt.Errorf("set status of wallet %d: %w", id, err)
	}
	return nil
}

// SetWalletMaxLimit sets or clears a wallet's max balance limit
func (s *WalletService) SetWalletMaxLimit(ctx context.Context, id uint, maxLimit *float64) error {
	path, err := endpoints.Build("wallets.setLimit", map[string]string{"id": strconv.FormatUint(uint64(id), 10)})
	if err != nil {
		return err
	}
	if err := s.api.Put(ctx, path, map[string]any{"maxLimit": maxLimit}, nil); err != nil {
		return fmt.Errorf("set max limit of wallet %d: %w", id, err)
	}
	return nil
}
