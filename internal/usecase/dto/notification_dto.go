package dto

// MessageNotification 연락 폼 메시지 알림 이벤트
type MessageNotification struct {
	MessageID string `json:"message_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

// TestimonialNotification 추천사 등록 알림 이벤트
type TestimonialNotification struct {
	TestimonialID string `json:"testimonial_id"`
	Name          string `json:"name"`
	Title         string `json:"title"`
	Rating        int    `json:"rating"`
	Message       string `json:"message"`
}
