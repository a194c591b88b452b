package http

import (
	"net/http"

	"github.com/joboy-dev/portfolio.api/internal/usecase/constants"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	"github.com/labstack/echo/v4"
)

// Response 단일 결과 응답 봉투
type Response struct {
	StatusCode int         `json:"status_code"`
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

// PaginatedResponse 목록 응답 봉투
type PaginatedResponse struct {
	StatusCode     int                `json:"status_code"`
	Success        bool               `json:"success"`
	Message        string             `json:"message"`
	PaginationData dto.PaginationData `json:"pagination_data"`
	Data           interface{}        `json:"data"`
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{
		StatusCode: status,
		Success:    true,
		Message:    message,
		Data:       data,
	})
}

// respondPage endpoint는 /api/v1 이후의 경로입니다 (예: /projects).
func respondPage[T any](c echo.Context, endpoint string, page *dto.Page[T]) error {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	return c.JSON(http.StatusOK, PaginatedResponse{
		StatusCode:     http.StatusOK,
		Success:        true,
		Message:        constants.MsgItemsFetched,
		PaginationData: dto.NewPaginationData(endpoint, page.Page, page.Size, page.Total),
		Data:           items,
	})
}
