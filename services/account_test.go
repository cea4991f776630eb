package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"edudash/models"
	"edudash/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccountService(t *testing.T, handler http.Handler) *AccountService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	api := upstream.New(server.URL, "test-token", 5*time.Second)
	notif := NewNotificationService(api, 7, 3, time.Millisecond)
	return NewAccountService(api, notif)
}

func TestUpdateAccountStatus_SendsNotification(t *testing.T) {
	var statusBody map[string]string
	var notifBody map[string]any

	svc := newTestAccountService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/accounts/5/status":
			json.NewDecoder(r.Body).Decode(&statusBody)
			writeEnvelope(w, nil)
		case "/notifications/send":
			json.NewDecoder(r.Body).Decode(&notifBody)
			writeEnvelope(w, models.Notification{ID: 1})
		default:
			http.NotFound(w, r)
		}
	}))

	require.NoError(t, svc.UpdateAccountStatus(context.Background(), 5, "SUSPENDED"))

	assert.Equal(t, "SUSPENDED", statusBody["status"])
	assert.Equal(t, "AccStatus", notifBody["type"], "side-effect notification carries the canonical type")
}

func TestUpdateAccountStatus_NotificationFailureIsSwallowed(t *testing.T) {
	svc := newTestAccountService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/notifications/send" {
			http.Error(w, "notifier down", http.StatusServiceUnavailable)
			return
		}
		writeEnvelope(w, nil)
	}))

	// The primary action still succeeds
	assert.NoError(t, svc.UpdateAccountStatus(context.Background(), 5, "ACTIVE"))
}

func TestUpdateAccountStatus_PrimaryFailurePropagates(t *testing.T) {
	svc := newTestAccountService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))

	err := svc.UpdateAccountStatus(context.Background(), 5, "ACTIVE")
	assert.ErrorContains(t, err, "update status of account 5")
}

func TestUpdateAccountStatus_RejectsUnknownStatus(t *testing.T) {
	requests := 0
	svc := newTestAccountService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	err := svc.UpdateAccountStatus(context.Background(), 5, "SHADOWBANNED")
	assert.ErrorContains(t, err, "invalid account status")
	assert.Zero(t, requests, "no request may be issued for invalid input")
}

func TestListAccounts_FailureYieldsEmptyPage(t *testing.T) {
	svc := newTestAccountService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))

	page, err := svc.ListAccounts(context.Background(), 0, 20, "")
	assert.Error(t, err)
	assert.NotNil(t, page.Content)
	assert.Empty(t, page.Content)
}
