package repository

import "github.com/joboy-dev/portfolio.api/internal/domain/entity"

// Repositories 모든 레포지토리 인터페이스의 컬렉션
type Repositories struct {
	Transactor Transactor

	User             Store[entity.User]
	Token            Store[entity.Token]
	BlacklistedToken Store[entity.BlacklistedToken]
	Profile          Store[entity.Profile]
	Project          Store[entity.Project]
	Blog             Store[entity.Blog]
	Skill            Store[entity.Skill]
	Experience       Store[entity.Experience]
	Education        Store[entity.Education]
	Award            Store[entity.Award]
	Certification    Store[entity.Certification]
	Service          Store[entity.Service]
	Testimonial      Store[entity.Testimonial]
	Message          Store[entity.Message]
	File             Store[entity.File]
	Tag              Store[entity.Tag]
	TagAssociation   Store[entity.TagAssociation]
	Category         Store[entity.Category]
	CategoryLink     Store[entity.CategoryAssociation]

	Cache CacheRepository
	Mail  MailRepository
}
