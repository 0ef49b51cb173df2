package config

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the optional local audit database. It stays nil when AUDIT_DB_URL is
// unset; all dashboard entities live behind the remote backend regardless.
var DB *gorm.DB

func ConnectAuditDB(cfg *Config) error {
	if cfg.AuditDBURL == "" {
		return nil
	}

	db, err := gorm.Open(postgres.Open(cfg.AuditDBURL), &gorm.Config{})
	if err != nil {
		return err
	}

	DB = db
	return nil
}
