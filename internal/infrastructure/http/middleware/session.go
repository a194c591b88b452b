package middleware

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// SessionKey는 OAuth state를 묶어 두는 쿠키 세션 이름입니다.
const (
	SessionKey      = "portfolio_session"
	oauthStateValue = "oauth_state"
)

// NewSessionStore 쿠키 기반 세션 저장소
func NewSessionStore(secret string, secure bool) sessions.Store {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   10 * 60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// SaveOAuthState Google 로그인을 시작한 브라우저에 state를 기록합니다.
func SaveOAuthState(c echo.Context, state string) error {
	sess, err := session.Get(SessionKey, c)
	if err != nil {
		return err
	}
	sess.Values[oauthStateValue] = state
	return sess.Save(c.Request(), c.Response())
}

// PopOAuthState 기록된 state를 꺼내고 세션에서 지웁니다. 세션이 없으면 빈 문자열을 반환합니다.
func PopOAuthState(c echo.Context) string {
	sess, err := session.Get(SessionKey, c)
	if err != nil {
		return ""
	}
	state, _ := sess.Values[oauthStateValue].(string)
	if state != "" {
		delete(sess.Values, oauthStateValue)
		_ = sess.Save(c.Request(), c.Response())
	}
	return state
}
