package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tokensIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "tokens_issued_total",
		Help:      "발급된 토큰 수 (유형별)",
	}, []string{"type"})

	tokensRevoked = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "tokens_revoked_total",
		Help:      "폐기된 토큰 수 (유형별)",
	}, []string{"type"})

	fileUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "file_uploads_total",
		Help:      "파일 업로드 결과 (저장소, 결과별)",
	}, []string{"storage", "result"})

	notificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "notifications_total",
		Help:      "알림 메일 처리 결과 (채널, 결과별)",
	}, []string{"channel", "result"})
)
