package entity

import "gorm.io/datatypes"

// Profile 포트폴리오 소유자 프로필 (단일 레코드)
type Profile struct {
	Record
	Email            string         `gorm:"not null" json:"email" validate:"required,email"`
	FirstName        string         `gorm:"not null" json:"first_name" validate:"required"`
	LastName         string         `gorm:"not null" json:"last_name" validate:"required"`
	Title            string         `gorm:"not null" json:"title" validate:"required"`
	ImageURL         string         `gorm:"not null" json:"image_url"`
	PhoneNumber      *string        `json:"phone_number"`
	PhoneCountryCode *string        `json:"phone_country_code"`
	City             *string        `json:"city"`
	State            *string        `json:"state"`
	Country          *string        `json:"country"`
	Address          *string        `gorm:"type:text" json:"address"`
	ShortBio         *string        `gorm:"type:text" json:"short_bio"`
	About            *string        `gorm:"type:text" json:"about"`
	Interests        datatypes.JSON `json:"interests"`
	Hobbies          datatypes.JSON `json:"hobbies"`
	ResumeURL        *string        `json:"resume_url"`
	GithubURL        *string        `json:"github_url"`
	LinkedinURL      *string        `json:"linkedin_url"`
	TwitterURL       *string        `json:"twitter_url"`
	FacebookURL      *string        `json:"facebook_url"`
	InstagramURL     *string        `json:"instagram_url"`
	YoutubeURL       *string        `json:"youtube_url"`
	TiktokURL        *string        `json:"tiktok_url"`
	WhatsappURL      *string        `json:"whatsapp_url"`
	WebsiteURL       *string        `json:"website_url"`
}

func (Profile) TableName() string { return "profile" }

func (Profile) DeletionMode() DeletionMode { return SoftDelete }

var profileQuery = QuerySpec{
	Writable: fields(
		"email", "first_name", "last_name", "title", "image_url", "phone_number", "phone_country_code",
		"city", "state", "country", "address", "short_bio", "about", "interests", "hobbies", "resume_url",
		"github_url", "linkedin_url", "twitter_url", "facebook_url", "instagram_url", "youtube_url",
		"tiktok_url", "whatsapp_url", "website_url", "position",
	),
}

func (Profile) QuerySpec() QuerySpec { return profileQuery }

// FullName 이름과 성을 합친 표시 이름
func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}
