// Package testutil 테스트용 인메모리 SQLite 데이터베이스와 레포지토리 구성
package testutil

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/joboy-dev/portfolio.api/internal/adapter/repository"
	domainrepo "github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"github.com/joboy-dev/portfolio.api/internal/infrastructure/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewDB 마이그레이션된 인메모리 SQLite 데이터베이스
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	database, err := db.NewSQLiteDB(db.Config{Driver: "sqlite", Path: "file::memory:", LogLevel: "silent"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database, zap.NewNop()))

	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return database
}

// SentMail 발송 기록
type SentMail struct {
	To      string
	Subject string
	Body    string
}

// Mailer 발송 내용을 기록하는 메일 저장소
type Mailer struct {
	mu   sync.Mutex
	sent []SentMail
}

// SendMail 발송 내용을 기록합니다.
func (m *Mailer) SendMail(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}

// Sent 기록된 메일 목록
func (m *Mailer) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMail, len(m.sent))
	copy(out, m.sent)
	return out
}

// Env 테스트 레포지토리 묶음
type Env struct {
	DB     *gorm.DB
	Repos  *domainrepo.Repositories
	Redis  *miniredis.Miniredis
	Mailer *Mailer
}

// NewEnv SQLite, miniredis, 기록용 메일러로 레포지토리를 구성합니다.
func NewEnv(t testing.TB) *Env {
	t.Helper()

	database := NewDB(t)
	mr := miniredis.RunT(t)

	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	client, err := db.NewRedisClient(db.RedisConfig{Host: mr.Host(), Port: port}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	mailer := &Mailer{}
	repos, err := repository.InitRepositories(database, db.NewRedisRepository(client, zap.NewNop()), mailer)
	require.NoError(t, err)

	return &Env{DB: database, Repos: repos, Redis: mr, Mailer: mailer}
}
