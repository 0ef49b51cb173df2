// models/audit.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog records one admin mutation against the remote backend. This is the
// only locally persisted model; everything else lives remotely.
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID     string    `gorm:"type:varchar(40);index"`
	Action     string    `gorm:"type:varchar(20)"` // insert, update, soft_delete
	Entity     string    `gorm:"type:varchar(40)"` // remote table name
	EntityID   int64     `gorm:"index"`
	Detail     string    `gorm:"type:text"`
	OccurredAt time.Time
	gorm.Model
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) (err error) {
	a.ID = uuid.New()
	return
}
