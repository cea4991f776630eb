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

// InstructorService translates instructor admin operations into upstream calls
type InstructorService struct {
	api           *upstream.Client
	notifications *NotificationService
}

// NewInstructorService creates an InstructorService
func NewInstructorService(api *upstream.Client, notifications *NotificationService) *InstructorService {
	return &InstructorService{api: api, notifications: notifications}
}

// ListInstructors returns one page of instructors, optionally filtered by
// approval status
func (s *InstructorService) ListInstructors(ctx context.Context, page, size int, status string) (models.Page[models.Instructor], error) {
	path, err := endpoints.Build("instructors.list", nil)
	if err != nil {
		return models.EmptyPage[models.Instructor](), err
	}

	query := pageQuery(page, size)
	if status != "" {
		query["status"] = status
	}

	result := models.EmptyPage[models.Instructor]()
	if err := s.api.Get(ctx, path, query, &result); err != nil {
		log.Printf("Failed to fetch instructors: %v", err)
		return models.EmptyPage[models.Instructor](), err
	}
	if result.Content == nil {
		result.Content = []models.Instructor{}
	}
	return result, nil
}

// GetInstructorDetail fetches the profile and its nested collections (served
// by the upstream as separate queries) and merges them for display. The
// profile itself is required; a failing sub-query degrades to an empty
// collection instead of failing the whole detail view.
func (s *InstructorService) GetInstructorDetail(ctx context.Context, id uint) (models.InstructorDetail, error) {
	params := map[string]string{"id": strconv.FormatUint(uint64(id), 10)}

	path, err := endpoints.Build("instructors.get", params)
	if err != nil {
		return models.InstructorDetail{}, err
	}
	var profile models.Instructor
	if err := s.api.Get(ctx, path, nil, &profile); err != nil {
		return models.InstructorDetail{}, fmt.Errorf("get instructor %d: %w", id, err)
	}

	detail := models.InstructorDetail{
		Instructor:  profile,
		Educations:  []models.Education{},
		Experiences: []models.Experience{},
		Skills:      []models.Skill{},
		SocialLinks: []models.SocialLink{},
	}

	if path, err := endpoints.Build("instructors.educations", params); err == nil {
		if gerr := s.api.Get(ctx, path, nil, &detail.Educations); gerr != nil {
			log.Printf("Failed to fetch educations for instructor %d: %v", id, gerr)
		}
	}
	if path, err := endpoints.Build("instructors.experiences", params); err == nil {
		if gerr := s.api.Get(ctx, path, nil, &detail.Experiences); gerr != nil {
			log.Printf("Failed to fetch experiences for instructor %d: %v", id, gerr)
		}
	}
	if path, err := endpoints.Build("instructors.skills", params); err == nil {
		if gerr := s.api.Get(ctx, path, nil, &detail.Skills); gerr != nil {
			log.Printf("Failed to fetch skills for instructor %d: %v", id, gerr)
		}
	}
	if path, err := endpoints.Build("instructors.socialLinks", params); err == nil {
		if gerr := s.api.Get(ctx, path, nil, &detail.SocialLinks); gerr != nil {
			log.Printf("Failed to fetch social links for instructor %d: %v", id, gerr)
		}
	}

	return detail, nil
}

// ApproveInstructor approves a pending instructor and notifies them. The
// notification failure never fails the approval.
func (s *InstructorService) ApproveInstructor(ctx context.Context, id uint) error {
	path, err := endpoints.Build("instructors.approve", map[string]string{"id": strconv.FormatUint(uint64(id), 10)})
	if err != nil {
		return err
	}
	if err := s.api.Put(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("approve instructor %d: %w", id, err)
	}

	if _, nerr := s.notifications.Send(ctx, id, "Your instructor profile has been approved.", "COURSE_APPROVAL"); nerr != nil {
		log.Printf("Approval notification for instructor %d failed: %v", id, nerr)
	}
	return nil
}

// RejectInstructor rejects a pending instructor and notifies them with the
// reason. The notification failure never fails the rejection.
func (s *InstructorService) RejectInstructor(ctx context.Context, id uint, reason string) error {
	path, err := endpoints.Build("instructors.reject", map[string]string{"id": strconv.FormatUint(uint64(id), 10)})
	if err != nil {
		return err
	}
	if err := s.api.Put(ctx, path, map[string]string{"reason": reason}, nil); err != nil {
		return fmt.Errorf("reject instructor %d: %w", id, err)
	}

	content := "Your instructor profile has been rejected."
	if reason != "" {
		content += " Reason: " + reason
	}
	if _, nerr := s.notifications.Send(ctx, id, content, "COURSE_REJECTION"); nerr != nil {
		log.Printf("Rejection notification for instructor %d failed: %v", id, nerr)
	}
	return nil
}
