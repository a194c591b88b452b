package init

import (
	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"github.com/joboy-dev/portfolio.api/internal/usecase"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	"github.com/joboy-dev/portfolio.api/pkg/messaging"
	"go.uber.org/zap"
)

// Settings 유스케이스 설정 묶음
type Settings struct {
	Token    usecase.TokenConfig
	Auth     usecase.AuthConfig
	File     usecase.FileConfig
	NotifyTo string
}

// Dependencies 레포지토리 외의 외부 의존성
type Dependencies struct {
	Templates interfaces.EmailTemplates
	Storage   repository.FileStorage
	Broker    messaging.RedisClient
	Google    interfaces.GoogleProvider
}

// UseCases 애플리케이션의 모든 유스케이스 컨테이너
type UseCases struct {
	TokenUseCase        interfaces.TokenUseCase
	EmailUseCase        interfaces.EmailUseCase
	AuthUseCase         interfaces.AuthUseCase
	UserUseCase         interfaces.UserUseCase
	OAuthUseCase        interfaces.OAuthUseCase
	TagUseCase          interfaces.TaxonomyUseCase
	CategoryUseCase     interfaces.TaxonomyUseCase
	FileUseCase         interfaces.FileUseCase
	ProfileUseCase      interfaces.ProfileUseCase
	ProjectUseCase      interfaces.ProjectUseCase
	BlogUseCase         interfaces.BlogUseCase
	NotificationUseCase interfaces.NotificationUseCase

	Skills         interfaces.ContentUseCase[entity.Skill]
	Experiences    interfaces.ContentUseCase[entity.Experience]
	Education      interfaces.ContentUseCase[entity.Education]
	Awards         interfaces.ContentUseCase[entity.Award]
	Certifications interfaces.ContentUseCase[entity.Certification]
	Services       interfaces.ContentUseCase[entity.Service]
	Testimonials   interfaces.ContentUseCase[entity.Testimonial]
	Messages       interfaces.ContentUseCase[entity.Message]
}

// NewUseCases 모든 유스케이스 인스턴스 생성 및 초기화
func NewUseCases(
	repos *repository.Repositories,
	deps Dependencies,
	settings Settings,
	logger *zap.Logger,
) *UseCases {
	useCases := &UseCases{}

	// 1. 하위 유스케이스 초기화

	// 토큰 유스케이스 초기화
	useCases.TokenUseCase = usecase.NewTokenUseCase(
		logger,
		settings.Token,
		repos.Transactor,
		repos.Token,
		repos.BlacklistedToken,
	)

	// 이메일 유스케이스 초기화
	useCases.EmailUseCase = usecase.NewEmailUseCase(
		logger,
		repos.Mail,
		deps.Templates,
		settings.NotifyTo,
	)

	// 2. 인증과 사용자 관리

	useCases.AuthUseCase = usecase.NewAuthUseCase(
		logger,
		settings.Auth,
		repos.Transactor,
		repos.User,
		useCases.TokenUseCase,
		useCases.EmailUseCase,
	)

	useCases.UserUseCase = usecase.NewUserUseCase(
		logger,
		settings.Auth,
		repos.Transactor,
		repos.User,
		useCases.TokenUseCase,
		useCases.EmailUseCase,
	)

	// Google 로그인은 인증 유스케이스에 토큰 발급을 위임합니다
	useCases.OAuthUseCase = usecase.NewOAuthUseCase(
		logger,
		deps.Google,
		repos.User,
		repos.Cache,
		useCases.AuthUseCase,
	)

	// 3. 태그와 카테고리

	useCases.TagUseCase = usecase.NewTagUseCase(logger, repos.Transactor, repos.Tag, repos.TagAssociation)
	useCases.CategoryUseCase = usecase.NewCategoryUseCase(logger, repos.Transactor, repos.Category, repos.CategoryLink)

	// 4. 파일과 콘텐츠

	useCases.FileUseCase = usecase.NewFileUseCase(
		logger,
		settings.File,
		repos.Transactor,
		repos.File,
		deps.Storage,
	)

	useCases.ProfileUseCase = usecase.NewProfileUseCase(
		logger,
		repos.Transactor,
		repos.Profile,
		repos.Project,
		repos.Skill,
		useCases.FileUseCase,
	)

	useCases.ProjectUseCase = usecase.NewProjectUseCase(
		logger,
		repos.Transactor,
		repos.Project,
		useCases.TagUseCase,
		useCases.CategoryUseCase,
	)

	useCases.BlogUseCase = usecase.NewBlogUseCase(
		logger,
		repos.Transactor,
		repos.Blog,
		useCases.TagUseCase,
		useCases.CategoryUseCase,
	)

	useCases.Skills = usecase.NewContentUseCase[entity.Skill](logger, repos.Transactor, repos.Skill)
	useCases.Experiences = usecase.NewContentUseCase[entity.Experience](logger, repos.Transactor, repos.Experience)
	useCases.Education = usecase.NewContentUseCase[entity.Education](logger, repos.Transactor, repos.Education)
	useCases.Awards = usecase.NewContentUseCase[entity.Award](logger, repos.Transactor, repos.Award)
	useCases.Certifications = usecase.NewContentUseCase[entity.Certification](logger, repos.Transactor, repos.Certification)
	useCases.Services = usecase.NewContentUseCase[entity.Service](logger, repos.Transactor, repos.Service)
	useCases.Testimonials = usecase.NewContentUseCase[entity.Testimonial](logger, repos.Transactor, repos.Testimonial)
	useCases.Messages = usecase.NewContentUseCase[entity.Message](logger, repos.Transactor, repos.Message)

	// 5. 연락 메시지와 추천사 알림
	useCases.NotificationUseCase = usecase.NewNotificationUseCase(
		logger,
		repos.Transactor,
		repos.Message,
		repos.Testimonial,
		deps.Broker,
		useCases.EmailUseCase,
	)

	return useCases
}
