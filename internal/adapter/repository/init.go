package repository

import (
	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	domainrepo "github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"gorm.io/gorm"
)

// storeBuilder 여러 저장소를 만들면서 첫 번째 에러만 보관합니다
type storeBuilder struct {
	db  *gorm.DB
	err error
}

func build[T any, PT modelPtr[T]](b *storeBuilder) *GormStore[T, PT] {
	if b.err != nil {
		return nil
	}
	store, err := NewGormStore[T, PT](b.db)
	if err != nil {
		b.err = err
		return nil
	}
	return store
}

// InitRepositories 모든 레포지토리를 초기화하고 컬렉션을 반환합니다.
// 엔티티별 QuerySpec이 스키마와 맞지 않으면 에러를 반환합니다.
func InitRepositories(database *gorm.DB, cacheRepo domainrepo.CacheRepository, mailRepo domainrepo.MailRepository) (*domainrepo.Repositories, error) {
	b := &storeBuilder{db: database}

	repos := &domainrepo.Repositories{
		Transactor: NewTransactor(database),

		User:             build[entity.User](b),
		Token:            build[entity.Token](b),
		BlacklistedToken: build[entity.BlacklistedToken](b),
		Profile:          build[entity.Profile](b),
		Project:          build[entity.Project](b),
		Blog:             build[entity.Blog](b),
		Skill:            build[entity.Skill](b),
		Experience:       build[entity.Experience](b),
		Education:        build[entity.Education](b),
		Award:            build[entity.Award](b),
		Certification:    build[entity.Certification](b),
		Service:          build[entity.Service](b),
		Testimonial:      build[entity.Testimonial](b),
		Message:          build[entity.Message](b),
		File:             build[entity.File](b),
		Tag:              build[entity.Tag](b),
		TagAssociation:   build[entity.TagAssociation](b),
		Category:         build[entity.Category](b),
		CategoryLink:     build[entity.CategoryAssociation](b),

		Cache: cacheRepo,
		Mail:  mailRepo,
	}
	if b.err != nil {
		return nil, b.err
	}

	return repos, nil
}
