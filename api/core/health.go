package core

import (
	"context"

	"github.com/albumix/albumix/cache"
	"github.com/albumix/albumix/internal/materializer"
	"gorm.io/gorm"
)

func checkDatabaseHealth(db *gorm.DB) string {
	if db == nil {
		return "not initialized"
	}
	sqlDB, err := db.DB()
	if err != nil {
		return "error: " + err.Error()
	}
	if err := sqlDB.Ping(); err != nil {
		return "unavailable: " + err.Error()
	}
	return "ok"
}

func checkCacheHealth(provider cache.Provider) string {
	if provider == nil {
		return "not initialized"
	}
	return "ok"
}

func checkMaterializerHealth(mat materializer.Materializer) string {
	if mat == nil {
		return "not initialized"
	}
	if err := mat.Health(context.Background()); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
