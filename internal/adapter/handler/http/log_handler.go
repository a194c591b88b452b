package http

import (
	"fmt"
	"net/http"
	"os"
	"time"

	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	applog "github.com/joboy-dev/portfolio.api/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// LogHandler 서버 로그 파일을 SSE로 흘려보내는 관리자 전용 핸들러
type LogHandler struct {
	filePath string
	logger   *zap.Logger
}

// NewLogHandler creates a new LogHandler instance
func NewLogHandler(filePath string, logger *zap.Logger) *LogHandler {
	return &LogHandler{
		filePath: filePath,
		logger:   logger,
	}
}

func (h *LogHandler) Register(g *echo.Group, superuser echo.MiddlewareFunc) {
	g.GET("/logs", h.Stream, superuser)
}

// Stream handles GET /logs?lines=N
func (h *LogHandler) Stream(c echo.Context) error {
	if h.filePath == "" {
		return apperrors.NotFound("Log file is not configured")
	}
	if _, err := os.Stat(h.filePath); err != nil {
		if os.IsNotExist(err) {
			return apperrors.NotFound("Log file not found")
		}
		return err
	}

	res := c.Response()
	// 서버 WriteTimeout과 무관하게 연결이 유지되어야 합니다
	_ = http.NewResponseController(res.Writer).SetWriteDeadline(time.Time{})

	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	err := applog.Tail(c.Request().Context(), h.filePath, intParam(c, "lines"), func(line string) error {
		if _, err := fmt.Fprintf(res, "data: %s\n\n", line); err != nil {
			return err
		}
		res.Flush()
		return nil
	})
	if err != nil {
		h.logger.Warn("로그 스트림 중단", zap.String("path", h.filePath), zap.Error(err))
	}
	return nil
}
