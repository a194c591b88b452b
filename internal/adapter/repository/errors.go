package repository

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
)

var (
	pgUniqueDetail = regexp.MustCompile(`Key \(([^)]+)\)=`)
	sqliteUnique   = regexp.MustCompile(`UNIQUE constraint failed: [\w]+\.([\w]+)`)
)

// translateError 유일성 제약 위반을 필드 이름이 담긴 ValidationError로 변환합니다.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if m := pgUniqueDetail.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
			return uniqueViolation(m[1], err)
		}
		return apperrors.NewAppError(apperrors.ErrInvalidArgument, "Record already exists", err)
	}

	if m := sqliteUnique.FindStringSubmatch(err.Error()); len(m) == 2 {
		return uniqueViolation(m[1], err)
	}

	return err
}

func uniqueViolation(column string, err error) error {
	field := strings.ReplaceAll(strings.TrimSpace(column), "_", " ")
	return apperrors.NewAppError(apperrors.ErrInvalidArgument, fmt.Sprintf("Record with this %s already exists", field), err)
}
