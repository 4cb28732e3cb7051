package auth

import "github.com/labstack/echo/v4"

// contextKeyAppKey 인증에 사용된 App Key 저장용 Context 키
const contextKeyAppKey = "darkkaiser/echo-gtm/web/auth/AppKey"

// SetAppKey 인증을 통과한 App Key를 Context에 저장합니다.
func SetAppKey(c echo.Context, appKey string) {
	c.Set(contextKeyAppKey, appKey)
}

// AppKey Context에서 인증된 App Key를 조회합니다. 인증을 거치지 않은 요청이면 false를 반환합니다.
func AppKey(c echo.Context) (string, bool) {
	appKey, ok := c.Get(contextKeyAppKey).(string)
	return appKey, ok && appKey != ""
}
