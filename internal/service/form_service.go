package service

import (
	"context"

	"github.com/google/uuid"

	"feedbackpro/internal/model"
	"feedbackpro/internal/repository"
)

// FormService handles form CRUD, always scoped to the owning user.
type FormService struct {
	formRepo repository.FormRepo
	audit    *AuditService
}

// NewFormService creates a new form service
func NewFormService(formRepo repository.FormRepo, audit *AuditService) *FormService {
	return &FormService{
		formRepo: formRepo,
		audit:    audit,
	}
}

// Save creates or updates a form. An empty or unknown ID creates a new
// form; a known ID owned by the user updates it in place.
func (s *FormService) Save(ctx context.Context, userID string, form *model.Form) (*model.Form, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	form.UserID = userID

	if form.ID != "" {
		existing, err := s.formRepo.GetByID(ctx, form.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if existing.UserID != userID {
				return nil, ErrNotFormOwner
			}
			form.CreatedAt = existing.CreatedAt
			if err := s.formRepo.Update(ctx, form); err != nil {
				return nil, err
			}
			s.audit.Log(ctx, &model.AuditEntry{
				Action:       "Form Updated",
				UserID:       userID,
				ResourceType: "form",
				ResourceID:   form.ID,
			})
			return form, nil
		}
	}

	form.ID = "form_" + uuid.New().String()
	form.IsActive = true
	if err := s.formRepo.Create(ctx, form); err != nil {
		return nil, err
	}
	s.audit.Log(ctx, &model.AuditEntry{
		Action:       "Form Created",
		UserID:       userID,
		ResourceType: "form",
		ResourceID:   form.ID,
	})
	return form, nil
}

// Get returns a form after checking ownership.
func (s *FormService) Get(ctx context.Context, userID, formID string) (*model.Form, error) {
	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrFormNotFound
	}
	if form.UserID != userID {
		return nil, ErrNotFormOwner
	}
	return form, nil
}

// List returns every form the user owns.
func (s *FormService) List(ctx context.Context, userID string) ([]*model.Form, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	return s.formRepo.GetByUserID(ctx, userID)
}

// Toggle flips a form's isActive flag and returns the new state.
func (s *FormService) Toggle(ctx context.Context, userID, formID string) (bool, error) {
	form, err := s.Get(ctx, userID, formID)
	if err != nil {
		return false, err
	}

	next := !form.IsActive
	if err := s.formRepo.SetActive(ctx, formID, next); err != nil {
		return false, err
	}
	s.audit.Log(ctx, &model.AuditEntry{
		Action:       "Form Toggled",
		UserID:       userID,
		ResourceType: "form",
		ResourceID:   formID,
		Details:      map[string]interface{}{"isActive": next},
	})
	return next, nil
}

// Delete removes a form after checking ownership. Stored feedback stays; it
// remains part of the owner's analytics history.
func (s *FormService) Delete(ctx context.Context, userID, formID string) error {
	if _, err := s.Get(ctx, userID, formID); err != nil {
		return err
	}
	if err := s.formRepo.Delete(ctx, formID); err != nil {
		return err
	}
	s.audit.Log(ctx, &model.AuditEntry{
		Action:       "Form Deleted",
		UserID:       userID,
		ResourceType: "form",
		ResourceID:   formID,
		Severity:     "medium",
	})
	return nil
}
