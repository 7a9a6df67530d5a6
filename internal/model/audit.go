package model

import "time"

// AuditEntry records one user-visible action for the audit trail.
type AuditEntry struct {
	ID           string                 `json:"id" bson:"id"`
	Action       string                 `json:"action" bson:"action"`
	UserID       string                 `json:"userId,omitempty" bson:"userId,omitempty"`
	ResourceType string                 `json:"resourceType,omitempty" bson:"resourceType,omitempty"`
	ResourceID   string                 `json:"resourceId,omitempty" bson:"resourceId,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty" bson:"details,omitempty"`
	Severity     string                 `json:"severity" bson:"severity"` // low, medium, high
	Timestamp    time.Time              `json:"timestamp" bson:"timestamp"`
}
