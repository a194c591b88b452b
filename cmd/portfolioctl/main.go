// Package main provides portfolioctl, the administration CLI for the portfolio API.
package main

import (
	"fmt"
	"os"

	"github.com/joboy-dev/portfolio.api/internal/adapter/repository"
	"github.com/joboy-dev/portfolio.api/internal/config"
	domainrepo "github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"github.com/joboy-dev/portfolio.api/internal/infrastructure/db"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// configPath는 --config-path 플래그 값입니다. 비어 있으면 APP_ENV 기준 경로를 사용합니다.
	configPath string

	// app은 PersistentPreRunE에서 초기화됩니다.
	app *runtime
)

// runtime CLI 명령이 공유하는 설정과 데이터베이스 연결
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	repos  *domainrepo.Repositories
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "portfolioctl",
	Short: "Administration commands for the portfolio API",
	Long: `portfolioctl runs maintenance tasks against the portfolio database:
schema migration, superuser management and profile seeding.`,
	SilenceUsage:      true,
	PersistentPreRunE: openRuntime,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeRuntime()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", "", "directory containing portfolio.yaml (default: configs/$APP_ENV)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createSuperuserCmd)
	rootCmd.AddCommand(seedCmd)
}

// openRuntime 설정을 읽고 데이터베이스에 연결합니다.
// CLI는 Redis, SMTP, 파일 저장소를 사용하지 않습니다.
func openRuntime(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		if err := os.Setenv("CONFIG_PATH", configPath); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Open(db.DatabaseConfig(cfg), cfg.Logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	app = &runtime{cfg: cfg, logger: cfg.Logger, db: database}
	return nil
}

// repositories 테이블을 먼저 맞춘 뒤 저장소를 만듭니다.
func (r *runtime) repositories() (*domainrepo.Repositories, error) {
	if r.repos != nil {
		return r.repos, nil
	}
	if err := db.Migrate(r.db, r.logger); err != nil {
		return nil, err
	}
	repos, err := repository.InitRepositories(r.db, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("init repositories: %w", err)
	}
	r.repos = repos
	return repos, nil
}

func closeRuntime() error {
	if app == nil {
		return nil
	}
	_ = app.logger.Sync()
	sqlDB, err := app.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
