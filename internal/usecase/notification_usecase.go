package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"github.com/joboy-dev/portfolio.api/internal/usecase/constants"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	"github.com/joboy-dev/portfolio.api/pkg/messaging"
	"go.uber.org/zap"
)

// NotificationUseCase 연락 메시지와 추천사 알림 구현체
// 저장은 요청 안에서 끝나고, 메일 발송은 구독 워커가 맡습니다.
type NotificationUseCase struct {
	logger       *zap.Logger
	transactor   repository.Transactor
	messages     repository.Store[entity.Message]
	testimonials repository.Store[entity.Testimonial]
	broker       messaging.RedisClient
	emailUseCase interfaces.EmailUseCase
}

// NewNotificationUseCase 새 알림 유스케이스 생성
func NewNotificationUseCase(
	logger *zap.Logger,
	transactor repository.Transactor,
	messages repository.Store[entity.Message],
	testimonials repository.Store[entity.Testimonial],
	broker messaging.RedisClient,
	emailUseCase interfaces.EmailUseCase,
) interfaces.NotificationUseCase {
	return &NotificationUseCase{
		logger:       logger,
		transactor:   transactor,
		messages:     messages,
		testimonials: testimonials,
		broker:       broker,
		emailUseCase: emailUseCase,
	}
}

// SendMessage 메시지를 저장하고 이벤트를 발행합니다. 발행 실패는 요청을 실패시키지 않습니다.
func (uc *NotificationUseCase) SendMessage(ctx context.Context, message *entity.Message) (*entity.Message, error) {
	message.Email = NormalizeEmail(message.Email)
	if err := appendRecord[entity.Message](ctx, uc.transactor, uc.messages, message, nil); err != nil {
		uc.logger.Error("메시지 저장 실패", zap.Error(err))
		return nil, err
	}

	uc.publish(ctx, constants.ChannelMessages, dto.MessageNotification{
		MessageID: message.ID,
		Name:      message.Name,
		Email:     message.Email,
		Message:   message.Message,
	})
	return message, nil
}

// SubmitTestimonial 공개 등록된 추천사는 게시되지 않은 상태로 저장됩니다.
func (uc *NotificationUseCase) SubmitTestimonial(ctx context.Context, testimonial *entity.Testimonial) (*entity.Testimonial, error) {
	testimonial.IsPublished = false
	if err := appendRecord[entity.Testimonial](ctx, uc.transactor, uc.testimonials, testimonial, nil); err != nil {
		uc.logger.Error("추천사 저장 실패", zap.Error(err))
		return nil, err
	}

	uc.publish(ctx, constants.ChannelTestimonials, dto.TestimonialNotification{
		TestimonialID: testimonial.ID,
		Name:          testimonial.Name,
		Title:         testimonial.Title,
		Rating:        testimonial.Rating,
		Message:       testimonial.Message,
	})
	return testimonial, nil
}

func (uc *NotificationUseCase) publish(ctx context.Context, channel string, event interface{}) {
	if uc.broker == nil {
		uc.logger.Warn("메시지 브로커가 없어 알림을 건너뜁니다", zap.String("channel", channel))
		return
	}
	if err := uc.broker.Publish(ctx, channel, event); err != nil {
		notificationsSent.WithLabelValues(channel, "publish_failed").Inc()
		uc.logger.Error("알림 발행 실패", zap.String("channel", channel), zap.Error(err))
	}
}

// Run 두 채널을 구독하여 ctx가 끝날 때까지 메일로 전달합니다.
func (uc *NotificationUseCase) Run(ctx context.Context) error {
	if uc.broker == nil {
		return fmt.Errorf("메시지 브로커가 설정되지 않았습니다")
	}

	messages, err := uc.broker.Subscribe(ctx, constants.ChannelMessages)
	if err != nil {
		return err
	}
	testimonials, err := uc.broker.Subscribe(ctx, constants.ChannelTestimonials)
	if err != nil {
		return err
	}
	uc.logger.Info("알림 구독 시작",
		zap.String("messages", constants.ChannelMessages),
		zap.String("testimonials", constants.ChannelTestimonials),
	)

	for {
		select {
		case <-ctx.Done():
			uc.logger.Info("알림 구독 종료")
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			uc.handle(ctx, msg)
		case msg, ok := <-testimonials:
			if !ok {
				return nil
			}
			uc.handle(ctx, msg)
		}
	}
}

func (uc *NotificationUseCase) handle(ctx context.Context, msg messaging.Message) {
	var err error
	switch msg.Channel {
	case constants.ChannelMessages:
		var event dto.MessageNotification
		if err = json.Unmarshal(msg.Payload, &event); err == nil {
			err = uc.emailUseCase.NotifyMessage(ctx, event)
		}
	case constants.ChannelTestimonials:
		var event dto.TestimonialNotification
		if err = json.Unmarshal(msg.Payload, &event); err == nil {
			err = uc.emailUseCase.NotifyTestimonial(ctx, event)
		}
	default:
		uc.logger.Warn("알 수 없는 채널", zap.String("channel", msg.Channel))
		return
	}

	if err != nil {
		notificationsSent.WithLabelValues(msg.Channel, "failed").Inc()
		uc.logger.Error("알림 메일 발송 실패", zap.String("channel", msg.Channel), zap.Error(err))
		return
	}
	notificationsSent.WithLabelValues(msg.Channel, "sent").Inc()
}
