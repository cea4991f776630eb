package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"edudash/models"
	"edudash/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInstructorService(t *testing.T, handler http.Handler) *InstructorService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	api := upstream.New(server.URL, "test-token", 5*time.Second)
	notif := NewNotificationService(api, 7, 3, time.Millisecond)
	return NewInstructorService(api, notif)
}

func TestGetInstructorDetail_MergesNestedCollections(t *testing.T) {
	svc := newTestInstructorService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/instructors/3":
			writeEnvelope(w, models.Instructor{ID: 3, Name: "Ada", Status: models.InstructorStatusActive})
		case "/instructors/3/educations":
			writeEnvelope(w, []models.Education{{ID: 1, School: "MIT"}})
		case "/instructors/3/experiences":
			writeEnvelope(w, []models.Experience{{ID: 1, Company: "ACME"}, {ID: 2, Company: "Initech"}})
		case "/instructors/3/skills":
			writeEnvelope(w, []models.Skill{{ID: 1, Name: "Go"}})
		case "/instructors/3/social-links":
			writeEnvelope(w, []models.SocialLink{})
		default:
			http.NotFound(w, r)
		}
	}))

	detail, err := svc.GetInstructorDetail(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, "Ada", detail.Instructor.Name)
	assert.Len(t, detail.Educations, 1)
	assert.Len(t, detail.Experiences, 2)
	assert.Len(t, detail.Skills, 1)
	assert.NotNil(t, detail.SocialLinks)
}

func TestGetInstructorDetail_SubQueryFailureDegrades(t *testing.T) {
	svc := newTestInstructorService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/instructors/3":
			writeEnvelope(w, models.Instructor{ID: 3, Name: "Ada"})
		case "/instructors/3/skills":
			http.Error(w, "down", http.StatusInternalServerError)
		default:
			writeEnvelope(w, []any{})
		}
	}))

	detail, err := svc.GetInstructorDetail(context.Background(), 3)
	require.NoError(t, err, "a failing sub-query must not fail the detail view")
	assert.NotNil(t, detail.Skills)
	assert.Empty(t, detail.Skills)
}

func TestGetInstructorDetail_ProfileFailureFails(t *testing.T) {
	svc := newTestInstructorService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))

	_, err := svc.GetInstructorDetail(context.Background(), 3)
	assert.ErrorContains(t, err, "get instructor 3")
}

func TestApproveInstructor_NotificationFailureIsSwallowed(t *testing.T) {
	approved := false
	svc := newTestInstructorService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/instructors/3/approve":
			approved = true
			writeEnvelope(w, nil)
		default:
			http.Error(w, "notifier down", http.StatusServiceUnavailable)
		}
	}))

	assert.NoError(t, svc.ApproveInstructor(context.Background(), 3))
	assert.True(t, approved)
}
