package service

import (
	"context"
	"log"

	"feedbackpro/internal/model"
	"feedbackpro/internal/repository"
)

// AuditService records user-visible actions. Writes are best effort: a
// failed audit insert is logged and never fails the request that caused it.
type AuditService struct {
	auditRepo repository.AuditRepo
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repository.AuditRepo) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// Log writes one audit entry.
func (s *AuditService) Log(ctx context.Context, entry *model.AuditEntry) {
	if err := s.auditRepo.Insert(ctx, entry); err != nil {
		log.Printf("audit: failed to record %q: %v", entry.Action, err)
	}
}

// Recent returns the newest audit entries for a user.
func (s *AuditService) Recent(ctx context.Context, userID string, limit int64) ([]*model.AuditEntry, error) {
	return s.auditRepo.ListByUser(ctx, userID, limit)
}
