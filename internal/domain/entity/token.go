package entity

import "time"

// TokenType 토큰 용도
type TokenType string

const (
	TokenAccess              TokenType = "access"
	TokenRefresh             TokenType = "refresh"
	TokenMagic               TokenType = "magic"
	TokenPasswordReset       TokenType = "password_reset"
	TokenAccountReactivation TokenType = "account_reactivation"
)

// Token 발급된 유효 토큰
type Token struct {
	Record
	Token      string    `gorm:"type:text;not null;index" json:"token"`
	TokenType  TokenType `gorm:"type:varchar(32);not null;default:access" json:"token_type"`
	ExpiryTime time.Time `gorm:"not null" json:"expiry_time"`
	UserID     *string   `gorm:"index" json:"user_id"`
}

func (Token) TableName() string { return "tokens" }

func (Token) DeletionMode() DeletionMode { return HardDelete }

var tokenQuery = QuerySpec{
	Filters: fields("token", "token_type", "user_id"),
}

func (Token) QuerySpec() QuerySpec { return tokenQuery }

// BlacklistedToken 폐기된 토큰 (추가 전용)
type BlacklistedToken struct {
	Record
	Token  string  `gorm:"type:text;not null;index" json:"token"`
	UserID *string `gorm:"index" json:"user_id"`
}

func (BlacklistedToken) TableName() string { return "blacklisted_tokens" }

func (BlacklistedToken) DeletionMode() DeletionMode { return NoDelete }

var blacklistedTokenQuery = QuerySpec{
	Filters: fields("token", "user_id"),
}

func (BlacklistedToken) QuerySpec() QuerySpec { return blacklistedTokenQuery }

// All 마이그레이션 순서대로 나열한 전체 엔티티
func All() []interface{} {
	return []interface{}{
		&User{}, &Token{}, &BlacklistedToken{}, &Profile{}, &File{},
		&Project{}, &Blog{}, &Skill{}, &Experience{}, &Education{},
		&Award{}, &Certification{}, &Service{}, &Testimonial{}, &Message{},
		&Tag{}, &TagAssociation{}, &Category{}, &CategoryAssociation{},
	}
}
