package config

import (
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joboy-dev/portfolio.api/pkg/config"
	"github.com/joboy-dev/portfolio.api/pkg/logger"
	"go.uber.org/zap"
)

// Config 포트폴리오 API 설정 구조체
type Config struct {
	// 서비스 기본 정보
	Service struct {
		Name        string `yaml:"name"`
		Version     string `yaml:"version"`
		BaseURL     string `yaml:"base_url"`
		FrontendURL string `yaml:"frontend_url"`
	} `yaml:"service"`

	// 서버 설정
	Server struct {
		HTTP struct {
			Port           string   `yaml:"port"`
			Timeout        int      `yaml:"timeout"`
			Debug          bool     `yaml:"debug"`
			AllowedOrigins []string `yaml:"allowed_origins"`
		} `yaml:"http"`
	} `yaml:"server"`

	// 데이터베이스 설정
	Database struct {
		Driver          string        `yaml:"driver"` // postgres, sqlite
		Host            string        `yaml:"host"`
		Port            int           `yaml:"port"`
		Name            string        `yaml:"name"`
		User            string        `yaml:"user"`
		Password        string        `yaml:"password"`
		SSLMode         string        `yaml:"ssl_mode"`
		Path            string        `yaml:"path"` // sqlite 파일 경로
		MaxOpenConns    int           `yaml:"max_open_conns"`
		MaxIdleConns    int           `yaml:"max_idle_conns"`
		ConnMaxLifetime int           `yaml:"conn_max_lifetime"`
		LogLevel        string        `yaml:"log_level"`
		SlowThreshold   time.Duration `yaml:"slow_threshold"`
	} `yaml:"database"`

	// Redis 설정
	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	// JWT 설정
	JWT struct {
		Secret                    string        `yaml:"secret"`
		AccessTokenExpiry         time.Duration `yaml:"access_token_expiry"`
		RefreshTokenExpiry        time.Duration `yaml:"refresh_token_expiry"`
		MagicTokenExpiry          time.Duration `yaml:"magic_token_expiry"`
		PasswordResetExpiry       time.Duration `yaml:"password_reset_expiry"`
		AccountReactivationExpiry time.Duration `yaml:"account_reactivation_expiry"`
	} `yaml:"jwt"`

	// 인증 설정
	Auth struct {
		PasswordMinLength int    `yaml:"password_min_length"`
		HashCost          int    `yaml:"hash_cost"`
		SessionSecret     string `yaml:"session_secret"`
		CookieDomain      string `yaml:"cookie_domain"`
	} `yaml:"auth"`

	// OAuth 설정
	OAuth struct {
		Google struct {
			ClientID            string `yaml:"client_id"`
			ClientSecret        string `yaml:"client_secret"`
			RedirectURL         string `yaml:"redirect_url"`
			FrontendRedirectURL string `yaml:"frontend_redirect_url"`
		} `yaml:"google"`
	} `yaml:"oauth"`

	// Email 설정
	Email struct {
		SenderEmail string `yaml:"sender_email"`
		SenderName  string `yaml:"sender_name"`
		SMTPHost    string `yaml:"smtp_host"`
		SMTPPort    int    `yaml:"smtp_port"`
		SMTPUser    string `yaml:"smtp_user"`
		SMTPPass    string `yaml:"smtp_pass"`
		NotifyTo    string `yaml:"notify_to"`
	} `yaml:"email"`

	// 파일 저장소 설정
	Storage struct {
		Driver string `yaml:"driver"` // local, s3, firebase
		Root   string `yaml:"root"`
		Local  struct {
			Dir     string `yaml:"dir"`
			BaseURL string `yaml:"base_url"`
		} `yaml:"local"`
		S3 struct {
			Bucket          string        `yaml:"bucket"`
			Region          string        `yaml:"region"`
			Endpoint        string        `yaml:"endpoint"`
			AccessKeyID     string        `yaml:"access_key_id"`
			SecretAccessKey string        `yaml:"secret_access_key"`
			UsePathStyle    bool          `yaml:"use_path_style"`
			PublicURL       string        `yaml:"public_url"`
			PresignExpiry   time.Duration `yaml:"presign_expiry"`
		} `yaml:"s3"`
		Firebase struct {
			CredentialsFile string `yaml:"credentials_file"`
			Bucket          string `yaml:"bucket"`
		} `yaml:"firebase"`
	} `yaml:"storage"`

	// 업로드 제한
	Upload struct {
		LimitMB           int      `yaml:"limit_mb"`
		AllowedExtensions []string `yaml:"allowed_extensions"`
	} `yaml:"upload"`

	// 로그 설정
	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`

	// 로거 인스턴스
	Logger *zap.Logger
	// LogLevel 설정 파일 변경 시 갱신되는 로그 레벨
	LogLevel zap.AtomicLevel

	source config.Config
}

var defaultExtensions = []string{"jpg", "jpeg", "png", "gif", "webp", "svg", "pdf", "doc", "docx", "txt", "md"}

// Load 설정 파일 로드
func Load() (*Config, error) {
	cfg, err := config.Load("portfolio")
	if err != nil {
		return nil, err
	}

	appConfig, err := FromSource(cfg)
	if err != nil {
		return nil, err
	}

	return appConfig, nil
}

// FromSource 설정 소스에서 값을 복사하고 로거를 생성합니다.
func FromSource(cfg config.Config) (*Config, error) {
	appConfig := &Config{source: cfg}

	// 서비스 정보
	appConfig.Service.Name = stringOr(cfg, "service.name", "portfolio-api")
	appConfig.Service.Version = cfg.GetString("service.version")
	appConfig.Service.BaseURL = cfg.GetString("service.base_url")
	appConfig.Service.FrontendURL = cfg.GetString("service.frontend_url")

	// HTTP 서버 설정
	appConfig.Server.HTTP.Port = stringOr(cfg, "server.port", "8000")
	appConfig.Server.HTTP.Timeout = intOr(cfg, "server.timeout", 30)
	appConfig.Server.HTTP.Debug = cfg.GetBool("server.debug")
	appConfig.Server.HTTP.AllowedOrigins = cfg.GetStringSlice("server.allowed_origins")

	// 데이터베이스 설정
	appConfig.Database.Driver = stringOr(cfg, "database.driver", "postgres")
	appConfig.Database.Host = cfg.GetString("database.host")
	appConfig.Database.Port = cfg.GetInt("database.port")
	appConfig.Database.Name = cfg.GetString("database.name")
	appConfig.Database.User = cfg.GetString("database.user")
	appConfig.Database.Password = cfg.GetString("database.password")
	appConfig.Database.SSLMode = stringOr(cfg, "database.ssl_mode", "disable")
	appConfig.Database.Path = stringOr(cfg, "database.path", "portfolio.db")
	appConfig.Database.MaxOpenConns = intOr(cfg, "database.max_open_conns", 10)
	appConfig.Database.MaxIdleConns = intOr(cfg, "database.max_idle_conns", 5)
	appConfig.Database.ConnMaxLifetime = intOr(cfg, "database.conn_max_lifetime", 300)
	appConfig.Database.LogLevel = stringOr(cfg, "database.log_level", "warn")
	appConfig.Database.SlowThreshold = durationOr(cfg, "database.slow_threshold", 3*time.Second)

	// Redis 설정
	appConfig.Redis.Host = stringOr(cfg, "redis.host", "localhost")
	appConfig.Redis.Port = intOr(cfg, "redis.port", 6379)
	appConfig.Redis.Password = cfg.GetString("redis.password")
	appConfig.Redis.DB = cfg.GetInt("redis.db")

	// JWT 설정
	appConfig.JWT.Secret = cfg.GetString("jwt.secret")
	appConfig.JWT.AccessTokenExpiry = durationOr(cfg, "jwt.access_token_expiry", 30*time.Minute)
	appConfig.JWT.RefreshTokenExpiry = durationOr(cfg, "jwt.refresh_token_expiry", 7*24*time.Hour)
	appConfig.JWT.MagicTokenExpiry = durationOr(cfg, "jwt.magic_token_expiry", 15*time.Minute)
	appConfig.JWT.PasswordResetExpiry = durationOr(cfg, "jwt.password_reset_expiry", 15*time.Minute)
	appConfig.JWT.AccountReactivationExpiry = durationOr(cfg, "jwt.account_reactivation_expiry", 24*time.Hour)

	// 인증 설정
	appConfig.Auth.PasswordMinLength = intOr(cfg, "auth.password_min_length", 8)
	appConfig.Auth.HashCost = intOr(cfg, "auth.hash_cost", 10)
	appConfig.Auth.SessionSecret = cfg.GetString("auth.session_secret")
	appConfig.Auth.CookieDomain = cfg.GetString("auth.cookie_domain")

	// OAuth 설정
	appConfig.OAuth.Google.ClientID = cfg.GetString("oauth.google.client_id")
	appConfig.OAuth.Google.ClientSecret = cfg.GetString("oauth.google.client_secret")
	appConfig.OAuth.Google.RedirectURL = cfg.GetString("oauth.google.redirect_url")
	appConfig.OAuth.Google.FrontendRedirectURL = cfg.GetString("oauth.google.frontend_redirect_url")

	// 이메일 설정
	appConfig.Email.SenderEmail = cfg.GetString("email.sender_email")
	appConfig.Email.SenderName = stringOr(cfg, "email.sender_name", appConfig.Service.Name)
	appConfig.Email.SMTPHost = cfg.GetString("email.smtp_host")
	appConfig.Email.SMTPPort = intOr(cfg, "email.smtp_port", 587)
	appConfig.Email.SMTPUser = cfg.GetString("email.smtp_user")
	appConfig.Email.SMTPPass = cfg.GetString("email.smtp_pass")
	appConfig.Email.NotifyTo = cfg.GetString("email.notify_to")

	// 저장소 설정
	appConfig.Storage.Driver = stringOr(cfg, "storage.driver", "local")
	appConfig.Storage.Root = stringOr(cfg, "storage.root", "uploads")
	appConfig.Storage.Local.Dir = stringOr(cfg, "storage.local.dir", ".")
	appConfig.Storage.Local.BaseURL = cfg.GetString("storage.local.base_url")
	appConfig.Storage.S3.Bucket = cfg.GetString("storage.s3.bucket")
	appConfig.Storage.S3.Region = stringOr(cfg, "storage.s3.region", "us-east-1")
	appConfig.Storage.S3.Endpoint = cfg.GetString("storage.s3.endpoint")
	appConfig.Storage.S3.AccessKeyID = cfg.GetString("storage.s3.access_key_id")
	appConfig.Storage.S3.SecretAccessKey = cfg.GetString("storage.s3.secret_access_key")
	appConfig.Storage.S3.UsePathStyle = cfg.GetBool("storage.s3.use_path_style")
	appConfig.Storage.S3.PublicURL = cfg.GetString("storage.s3.public_url")
	appConfig.Storage.S3.PresignExpiry = durationOr(cfg, "storage.s3.presign_expiry", 7*24*time.Hour)
	appConfig.Storage.Firebase.CredentialsFile = cfg.GetString("storage.firebase.credentials_file")
	appConfig.Storage.Firebase.Bucket = cfg.GetString("storage.firebase.bucket")

	// 업로드 설정
	appConfig.Upload.LimitMB = intOr(cfg, "upload.limit_mb", 5)
	appConfig.Upload.AllowedExtensions = cfg.GetStringSlice("upload.allowed_extensions")
	if len(appConfig.Upload.AllowedExtensions) == 0 {
		appConfig.Upload.AllowedExtensions = defaultExtensions
	}

	// 로그 설정
	appConfig.Log.Level = stringOr(cfg, "log.level", "info")
	appConfig.Log.Format = stringOr(cfg, "log.format", "json")
	appConfig.Log.Output = stringOr(cfg, "log.output", "stdout")
	appConfig.Log.FilePath = cfg.GetString("log.file_path")

	// 로거 생성
	loggerConfig := logger.Config{
		Level:       appConfig.Log.Level,
		Format:      appConfig.Log.Format,
		Output:      appConfig.Log.Output,
		FilePath:    appConfig.Log.FilePath,
		Development: appConfig.Server.HTTP.Debug,
	}

	var err error
	appConfig.Logger, appConfig.LogLevel, err = logger.NewZapLoggerWithLevel(loggerConfig)
	if err != nil {
		return nil, err
	}

	return appConfig, nil
}

// WatchLogLevel 설정 파일의 log.level 변경을 로거에 반영합니다.
func (c *Config) WatchLogLevel() error {
	if c.source == nil {
		return nil
	}
	return config.Watch(c.source, func(cfg config.Config, e fsnotify.Event) {
		level := logger.ParseLevel(cfg.GetString("log.level"))
		if level == c.LogLevel.Level() {
			return
		}
		c.LogLevel.SetLevel(level)
		c.Logger.Info("로그 레벨 변경",
			zap.String("file", e.Name),
			zap.String("level", level.String()),
		)
	})
}

func stringOr(cfg config.Config, key, fallback string) string {
	if v := cfg.GetString(key); v != "" {
		return v
	}
	return fallback
}

func intOr(cfg config.Config, key string, fallback int) int {
	if !cfg.IsSet(key) {
		return fallback
	}
	return cfg.GetInt(key)
}

func durationOr(cfg config.Config, key string, fallback time.Duration) time.Duration {
	if d := cfg.GetDuration(key); d > 0 {
		return d
	}
	return fallback
}
