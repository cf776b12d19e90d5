package main

import (
	"gorm.io/gorm"

	"fileshelf/internal/config"
	"fileshelf/internal/domain/upload"
	"fileshelf/internal/logging"
)

type app struct {
	cfg    *config.Config
	logger *logging.Logger
	db     *gorm.DB
	files  *upload.Service
}

func (a *app) Close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.logger.Close()
}
