// services/audit.go
package services

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"jeweladmin-backend/models"
)

// AuditRecorder persists a local trail of admin mutations. It is a no-op when
// the audit database is not configured; recording never fails a mutation.
type AuditRecorder struct {
	db *gorm.DB
}

func NewAuditRecorder(db *gorm.DB) *AuditRecorder {
	return &AuditRecorder{db: db}
}

// Enabled reports whether audit entries are being persisted.
func (a *AuditRecorder) Enabled() bool {
	return a.db != nil
}

// Record writes one audit row.
func (a *AuditRecorder) Record(userID, action, entity string, entityID int64, detail string) {
	if a.db == nil {
		return
	}

	entry := models.AuditLog{
		UserID:     userID,
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
		Detail:     detail,
		OccurredAt: time.Now(),
	}
	if err := a.db.Create(&entry).Error; err != nil {
		zap.L().Warn("failed to record audit entry",
			zap.String("action", action), zap.String("entity", entity), zap.Error(err))
	}
}

// Recent returns audit entries since the given time, newest first.
func (a *AuditRecorder) Recent(since time.Time, limit int) ([]models.AuditLog, error) {
	if a.db == nil {
		return nil, nil
	}

	var entries []models.AuditLog
	err := a.db.Where("occurred_at >= ?", since).
		Order("occurred_at desc").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
