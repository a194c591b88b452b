package http

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

// listQuery 쿼리 문자열에서 페이지, 정렬, 필터, 검색 조건을 읽습니다.
// 필터와 검색 이름은 엔티티의 QuerySpec에 선언된 것만 사용합니다.
func listQuery(c echo.Context, spec entity.QuerySpec) dto.ListQuery {
	query := dto.ListQuery{
		Page:   intParam(c, "page"),
		Size:   intParam(c, "per_page"),
		SortBy: c.QueryParam("sort_by"),
		Order:  strings.ToLower(c.QueryParam("order")),
	}
	if query.Size == 0 {
		query.Size = intParam(c, "size")
	}

	for name := range spec.Filters {
		if value := c.QueryParam(name); value != "" {
			if query.Filters == nil {
				query.Filters = make(map[string]interface{})
			}
			query.Filters[name] = filterValue(value)
		}
	}
	for name := range spec.Search {
		if _, isFilter := spec.Filters[name]; isFilter {
			continue
		}
		if value := c.QueryParam(name); value != "" {
			if query.Search == nil {
				query.Search = make(map[string]string)
			}
			query.Search[name] = value
		}
	}
	return query
}

func intParam(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}

// filterValue 불리언 문자열만 변환합니다.
func filterValue(value string) interface{} {
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	}
	return value
}

// splitList 쉼표로 구분된 값을 공백 없이 나눕니다.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// bindFields 부분 수정 본문을 필드 맵으로 읽습니다. 배열과 객체 값은 JSON 컬럼용으로 직렬화합니다.
func bindFields(c echo.Context) (map[string]interface{}, error) {
	var fields map[string]interface{}
	if err := json.NewDecoder(c.Request().Body).Decode(&fields); err != nil {
		return nil, apperrors.Validation("Invalid request body")
	}
	for name, value := range fields {
		switch value.(type) {
		case []interface{}, map[string]interface{}:
			raw, err := json.Marshal(value)
			if err != nil {
				return nil, apperrors.Validation("Invalid value for field '" + name + "'")
			}
			fields[name] = datatypes.JSON(raw)
		}
	}
	return fields, nil
}

// bindValid 본문을 읽고 validate 태그를 검사합니다.
func bindValid(c echo.Context, target interface{}) error {
	if err := c.Bind(target); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	return c.Validate(target)
}

// takeJSON 필드 맵에서 배열 또는 객체 값을 꺼내 target으로 읽습니다. 값이 없으면 false
func takeJSON(fields map[string]interface{}, name string, target interface{}) (bool, error) {
	value, ok := fields[name]
	if !ok {
		return false, nil
	}
	delete(fields, name)
	if value == nil {
		return false, nil
	}
	raw, ok := value.(datatypes.JSON)
	if !ok {
		return false, apperrors.Validation("Invalid value for field '" + name + "'")
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return false, apperrors.Validation("Invalid value for field '" + name + "'")
	}
	return true, nil
}
