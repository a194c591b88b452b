package db

import (
	"fmt"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate 모든 엔티티 테이블을 의존 순서대로 생성하거나 갱신합니다.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	models := entity.All()
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("마이그레이션 실패 (%T): %w", model, err)
		}
	}

	logger.Info("마이그레이션 완료", zap.Int("tables", len(models)))
	return nil
}
