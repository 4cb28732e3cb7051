package middleware

import (
	"github.com/darkkaiser/echo-gtm/internal/service/web/auth"
	"github.com/darkkaiser/echo-gtm/internal/service/web/constants"
	applog "github.com/darkkaiser/echo-gtm/pkg/log"
	"github.com/labstack/echo/v4"
)

// RequireAuthentication 관리 API 요청을 App Key로 인증하는 미들웨어를 반환합니다.
//
// 처리 과정:
//  1. X-App-Key 헤더에서 App Key 추출
//  2. Authenticator를 통한 인증 처리
//  3. 인증된 App Key를 Context에 저장 (auth.SetAppKey)
//
// 쿼리 파라미터로 전달된 키는 접근 로그에 남을 수 있으므로 받지 않습니다.
//
// 인증 실패 시:
//   - 401 Unauthorized: 헤더 누락, 등록되지 않은 키, 또는 서버에 등록된 키가 없음
//
// 사용 예시:
//
//	authMiddleware := middleware.RequireAuthentication(authenticator)
//	v1.PUT("/tracking", h.UpdateTrackingHandler, authMiddleware)
//
// Panics:
//   - authenticator가 nil인 경우
func RequireAuthentication(authenticator *auth.Authenticator) echo.MiddlewareFunc {
	if authenticator == nil {
		panic(constants.PanicMsgAuthenticatorRequired)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			appKey := c.Request().Header.Get(constants.HeaderXAppKey)

			if err := authenticator.Authenticate(appKey); err != nil {
				applog.WithComponentAndFields(constants.ComponentMiddlewareAuth, applog.Fields{
					"method":    c.Request().Method,
					"path":      c.Path(),
					"remote_ip": c.RealIP(),
				}).Warn("관리 API 인증 실패")

				return err
			}

			auth.SetAppKey(c, appKey)

			return next(c)
		}
	}
}
