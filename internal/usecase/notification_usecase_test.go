package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/usecase"
	"github.com/joboy-dev/portfolio.api/internal/usecase/constants"
	"github.com/joboy-dev/portfolio.api/pkg/messaging"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockBroker 메시지 브로커 모의 객체
type MockBroker struct {
	mock.Mock
}

func (m *MockBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	args := m.Called(ctx, channel, message)
	return args.Error(0)
}

func (m *MockBroker) Subscribe(ctx context.Context, channel string) (<-chan messaging.Message, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan messaging.Message), args.Error(1)
}

func (m *MockBroker) Close() error {
	return nil
}

func TestNotificationUseCase_SendMessage(t *testing.T) {
	h := newHarness(t)
	broker := new(MockBroker)
	uc := usecase.NewNotificationUseCase(zap.NewNop(), h.repos.Transactor, h.repos.Message, h.repos.Testimonial, broker, h.email)
	ctx := context.Background()

	broker.On("Publish", mock.Anything, constants.ChannelMessages, mock.Anything).Return(errors.New("redis down"))

	// 발행 실패는 요청을 실패시키지 않습니다
	msg, err := uc.SendMessage(ctx, &entity.Message{Name: "Eve", Email: "  Eve@Example.COM ", Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "eve@example.com", msg.Email)
	assert.Equal(t, 0, msg.Position)

	count, err := h.repos.Message.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	broker.AssertExpectations(t)
}

func TestNotificationUseCase_SubmitTestimonialUnpublished(t *testing.T) {
	h := newHarness(t)
	uc := usecase.NewNotificationUseCase(zap.NewNop(), h.repos.Transactor, h.repos.Message, h.repos.Testimonial, nil, h.email)

	testimonial, err := uc.SubmitTestimonial(context.Background(), &entity.Testimonial{
		Name: "Bob", Title: "CTO", Rating: 5, Message: "great", IsPublished: true,
	})
	require.NoError(t, err)
	assert.False(t, testimonial.IsPublished)

	stored, err := h.repos.Testimonial.FetchByID(context.Background(), testimonial.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsPublished)
}

func TestNotificationUseCase_RunWithoutBroker(t *testing.T) {
	h := newHarness(t)
	uc := usecase.NewNotificationUseCase(zap.NewNop(), h.repos.Transactor, h.repos.Message, h.repos.Testimonial, nil, h.email)
	assert.Error(t, uc.Run(context.Background()))
}

func TestNotificationUseCase_RunDeliversMail(t *testing.T) {
	h := newHarness(t)
	client := redis.NewClient(&redis.Options{Addr: h.env.Redis.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	broker := messaging.NewRedisClientFromClient(client)
	uc := usecase.NewNotificationUseCase(zap.NewNop(), h.repos.Transactor, h.repos.Message, h.repos.Testimonial, broker, h.email)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- uc.Run(ctx) }()

	require.Eventually(t, func() bool {
		subs := h.env.Redis.PubSubNumSub(constants.ChannelMessages, constants.ChannelTestimonials)
		return subs[constants.ChannelMessages] == 1 && subs[constants.ChannelTestimonials] == 1
	}, 2*time.Second, 10*time.Millisecond)

	_, err := uc.SendMessage(ctx, &entity.Message{Name: "Eve", Email: "eve@example.com", Message: "hello"})
	require.NoError(t, err)
	_, err = uc.SubmitTestimonial(ctx, &entity.Testimonial{Name: "Bob", Title: "CTO", Rating: 4, Message: "great"})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(h.env.Mailer.Sent()) == 2 }, 2*time.Second, 10*time.Millisecond)

	subjects := map[string]string{}
	for _, sent := range h.env.Mailer.Sent() {
		subjects[sent.Subject] = sent.To
	}
	assert.Equal(t, notifyTo, subjects["New message from Eve"])
	assert.Equal(t, notifyTo, subjects["New testimonial from Bob"])

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("알림 워커가 종료되지 않았습니다")
	}
}
