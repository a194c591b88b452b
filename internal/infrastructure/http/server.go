package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/joboy-dev/portfolio.api/internal/infrastructure/http/middleware"
	"github.com/joboy-dev/portfolio.api/pkg/logger"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Server HTTP 서버 구조체
type Server struct {
	router   *echo.Echo
	gatherer prometheus.Gatherer
	server   *http.Server
	logger   *zap.Logger
	address  string
}

// Config HTTP 서버 설정
type Config struct {
	Port           string
	Timeout        int
	Debug          bool
	AllowedOrigins []string
	// SessionSecret OAuth state 세션 쿠키 서명 키
	SessionSecret string
	// Subsystem Prometheus 지표 이름 접두사
	Subsystem string
	// Registry 비어 있으면 기본 레지스트리를 사용합니다
	Registry *prometheus.Registry
}

// NewServer HTTP 서버 생성
func NewServer(cfg Config, zapLogger *zap.Logger) *Server {
	// Echo 인스턴스 생성
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Debug

	// 기본 미들웨어 설정
	e.Use(echomw.Recover())

	// 로그 미들웨어 설정
	e.Use(logger.NewEchoRequestLogger(zapLogger))

	// Echo 로거와 에러 응답 설정
	logger.WithEchoLogger(e, zapLogger)

	// CORS
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// OAuth state 세션
	e.Use(session.Middleware(middleware.NewSessionStore(cfg.SessionSecret, !cfg.Debug)))

	// 요청 지표
	subsystem := cfg.Subsystem
	if subsystem == "" {
		subsystem = "portfolio"
	}
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if cfg.Registry != nil {
		registerer, gatherer = cfg.Registry, cfg.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  subsystem,
		Registerer: registerer,
	}))

	// 요청 본문 검증기
	e.Validator = NewRequestValidator()

	address := fmt.Sprintf(":%s", cfg.Port)

	server := &http.Server{
		Addr:         address,
		ReadTimeout:  time.Duration(cfg.Timeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Timeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Timeout) * time.Second,
	}

	return &Server{
		router:   e,
		gatherer: gatherer,
		server:   server,
		logger:   zapLogger,
		address:  address,
	}
}

// Router Echo 인스턴스 반환
func (s *Server) Router() *echo.Echo {
	return s.router
}

// RegisterRoutes 헬스 체크와 지표 라우트를 등록하고 /api/v1 그룹을 register에 넘깁니다.
func (s *Server) RegisterRoutes(register func(api *echo.Group)) {
	// 헬스 체크
	s.router.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	// Prometheus 지표
	s.router.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: s.gatherer,
	}))

	// API 버전 그룹
	v1 := s.router.Group("/api/v1")
	register(v1)
}

// ServeStatic 로컬 저장소의 파일을 prefix 경로로 서빙합니다.
func (s *Server) ServeStatic(prefix, dir string) {
	s.logger.Info("정적 파일 서빙",
		zap.String("prefix", prefix),
		zap.String("dir", dir),
	)
	s.router.Static(prefix, dir)
}

// Start HTTP 서버 시작
func (s *Server) Start() error {
	s.logger.Info("HTTP 서버 시작",
		zap.String("address", s.address),
	)

	s.server.Handler = s.router
	return s.router.StartServer(s.server)
}

// Stop HTTP 서버 종료
func (s *Server) Stop() error {
	s.logger.Info("HTTP 서버 종료 중...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.router.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP 서버 종료 실패: %w", err)
	}

	s.logger.Info("HTTP 서버 종료 완료")
	return nil
}
