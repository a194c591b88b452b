package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Skill 기술 스택 항목
type Skill struct {
	Record
	Name        string  `gorm:"not null" json:"name" validate:"required"`
	Proficiency *int    `json:"proficiency"`
	FileID      *string `json:"file_id"`
}

func (Skill) TableName() string { return "skills" }

func (Skill) DeletionMode() DeletionMode { return SoftDelete }

var skillQuery = QuerySpec{
	Search:   fields("name"),
	Sorts:    fields("name", "proficiency"),
	Writable: fields("name", "proficiency", "file_id", "position"),
}

func (Skill) QuerySpec() QuerySpec { return skillQuery }

// Experience 경력
type Experience struct {
	Record
	Company     string     `gorm:"not null" json:"company" validate:"required"`
	Location    string     `gorm:"not null" json:"location" validate:"required"`
	Role        string     `gorm:"not null" json:"role" validate:"required"`
	StartDate   time.Time  `gorm:"not null" json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	FileID      *string    `json:"file_id"`
	Description *string    `gorm:"type:text" json:"description"`
}

func (Experience) TableName() string { return "experiences" }

func (Experience) DeletionMode() DeletionMode { return SoftDelete }

var experienceQuery = QuerySpec{
	Filters:  fields("location"),
	Search:   fields("company", "role"),
	Sorts:    fields("company", "start_date", "end_date"),
	Writable: fields("company", "location", "role", "start_date", "end_date", "file_id", "description", "position"),
}

func (Experience) QuerySpec() QuerySpec { return experienceQuery }

// Education 학력
type Education struct {
	Record
	School      string     `gorm:"not null" json:"school" validate:"required"`
	Location    string     `gorm:"not null" json:"location" validate:"required"`
	Degree      *string    `json:"degree"`
	Grade       *string    `json:"grade"`
	StartDate   time.Time  `gorm:"not null" json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	FileID      *string    `json:"file_id"`
	Description *string    `gorm:"type:text" json:"description"`
}

func (Education) TableName() string { return "education" }

func (Education) DeletionMode() DeletionMode { return SoftDelete }

var educationQuery = QuerySpec{
	Filters:  fields("location", "degree"),
	Search:   fields("school"),
	Sorts:    fields("school", "start_date", "end_date"),
	Writable: fields("school", "location", "degree", "grade", "start_date", "end_date", "file_id", "description", "position"),
}

func (Education) QuerySpec() QuerySpec { return educationQuery }

// Award 수상 내역
type Award struct {
	Record
	Name      string     `gorm:"not null" json:"name" validate:"required"`
	Issuer    string     `gorm:"not null" json:"issuer" validate:"required"`
	IssueDate *time.Time `json:"issue_date"`
	FileID    *string    `json:"file_id"`
}

func (Award) TableName() string { return "awards" }

func (Award) DeletionMode() DeletionMode { return SoftDelete }

var awardQuery = QuerySpec{
	Filters:  fields("issuer"),
	Search:   fields("name"),
	Sorts:    fields("name", "issue_date"),
	Writable: fields("name", "issuer", "issue_date", "file_id", "position"),
}

func (Award) QuerySpec() QuerySpec { return awardQuery }

// Certification 자격증
type Certification struct {
	Record
	Name          string     `gorm:"not null" json:"name" validate:"required"`
	Issuer        string     `gorm:"not null" json:"issuer" validate:"required"`
	IssueDate     *time.Time `json:"issue_date"`
	CredentialID  *string    `json:"credential_id"`
	CredentialURL *string    `json:"credential_url"`
	IssuerFileID  *string    `json:"issuer_file_id"`
	FileID        *string    `json:"file_id"`
}

func (Certification) TableName() string { return "certifications" }

func (Certification) DeletionMode() DeletionMode { return SoftDelete }

var certificationQuery = QuerySpec{
	Filters:  fields("issuer"),
	Search:   fields("name"),
	Sorts:    fields("name", "issue_date"),
	Writable: fields("name", "issuer", "issue_date", "credential_id", "credential_url", "issuer_file_id", "file_id", "position"),
}

func (Certification) QuerySpec() QuerySpec { return certificationQuery }

// Service 제공 서비스
type Service struct {
	Record
	Name        string         `gorm:"not null" json:"name" validate:"required"`
	Description *string        `gorm:"type:text" json:"description"`
	Skills      datatypes.JSON `json:"skills"`
	FileID      *string        `json:"file_id"`
}

func (Service) TableName() string { return "services" }

func (Service) DeletionMode() DeletionMode { return SoftDelete }

var serviceQuery = QuerySpec{
	Search:   fields("name"),
	Sorts:    fields("name"),
	Writable: fields("name", "description", "skills", "file_id", "position"),
}

func (Service) QuerySpec() QuerySpec { return serviceQuery }

// Testimonial 추천사
type Testimonial struct {
	Record
	Name        string `gorm:"not null" json:"name" validate:"required"`
	Title       string `gorm:"not null" json:"title" validate:"required"`
	Rating      int    `gorm:"not null;default:1" json:"rating" validate:"omitempty,min=1,max=5"`
	Message     string `gorm:"type:text;not null" json:"message" validate:"required"`
	IsPublished bool   `gorm:"not null;default:false" json:"is_published"`
}

func (Testimonial) TableName() string { return "testimonials" }

func (Testimonial) DeletionMode() DeletionMode { return SoftDelete }

var testimonialQuery = QuerySpec{
	Filters:  fields("is_published", "rating"),
	Search:   fields("name", "title"),
	Sorts:    fields("name", "rating"),
	Writable: fields("name", "title", "rating", "message", "is_published", "position"),
}

func (Testimonial) QuerySpec() QuerySpec { return testimonialQuery }

// Message 연락 폼 메시지
type Message struct {
	Record
	Name             string  `gorm:"not null" json:"name" validate:"required"`
	Email            string  `gorm:"not null;index" json:"email" validate:"required,email"`
	PhoneCountryCode *string `json:"phone_country_code"`
	PhoneNumber      *string `json:"phone_number"`
	Location         *string `json:"location"`
	Message          string  `gorm:"type:text;not null" json:"message" validate:"required"`
}

func (Message) TableName() string { return "messages" }

func (Message) DeletionMode() DeletionMode { return SoftDelete }

var messageQuery = QuerySpec{
	Filters:  fields("email"),
	Search:   fields("name", "email", "message"),
	Sorts:    fields("name", "email"),
	Writable: fields("position"),
}

func (Message) QuerySpec() QuerySpec { return messageQuery }
