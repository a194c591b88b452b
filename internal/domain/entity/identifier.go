package entity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewID 32자리 hex 기본 키를 생성합니다.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewUniqueID 공유용 보조 식별자를 생성합니다.
// 테이블 이름 앞 3글자를 대문자 접두사로 쓰고, 숫자 2자리와 영숫자 8자리를 붙입니다.
// 예: projects -> PRO-42K9D1ZQ0A
func NewUniqueID(table string) (string, error) {
	prefix := strings.ToUpper(table)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}

	twoDigits, err := gonanoid.Generate("0123456789", 2)
	if err != nil {
		return "", fmt.Errorf("failed to generate digits: %w", err)
	}

	rest, err := gonanoid.Generate("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ", 8)
	if err != nil {
		return "", fmt.Errorf("failed to generate alphanumeric part: %w", err)
	}

	return prefix + "-" + twoDigits + rest, nil
}
