package entity

import "time"

// User 관리자 및 방문자 계정
type User struct {
	Record
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	Password       *string    `json:"-"`
	FirstName      *string    `json:"first_name"`
	LastName       *string    `json:"last_name"`
	ProfilePicture *string    `json:"profile_picture"`
	IsActive       bool       `gorm:"not null" json:"is_active"`
	IsSuperuser    bool       `gorm:"not null;default:false" json:"is_superuser"`
	LastLogin      *time.Time `json:"last_login"`
}

func (User) TableName() string { return "users" }

func (User) DeletionMode() DeletionMode { return SoftDelete }

var userQuery = QuerySpec{
	Filters:  fields("email", "is_active", "is_superuser"),
	Search:   fields("email", "first_name", "last_name"),
	Sorts:    fields("email", "last_login"),
	Writable: fields("email", "password", "first_name", "last_name", "profile_picture", "is_active", "is_superuser", "last_login", "position"),
}

func (User) QuerySpec() QuerySpec { return userQuery }

// HasPassword 비밀번호 로그인 가능 여부
func (u *User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}
