package repository

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// GormTransactor 컨텍스트 기반 트랜잭션 관리자
type GormTransactor struct {
	db *gorm.DB
}

// NewTransactor 트랜잭션 관리자 생성
func NewTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{db: db}
}

// WithinTransaction fn을 하나의 트랜잭션 안에서 실행합니다.
// 이미 트랜잭션이 열린 컨텍스트라면 그 트랜잭션을 재사용합니다.
func (t *GormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return withinTransaction(ctx, t.db, fn)
}

func withinTransaction(ctx context.Context, db *gorm.DB, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn 컨텍스트에 트랜잭션이 있으면 그것을, 없으면 기본 연결을 반환합니다.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
