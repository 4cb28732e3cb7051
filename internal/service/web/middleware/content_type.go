package middleware

import (
	"mime"
	"strings"

	"github.com/darkkaiser/echo-gtm/internal/service/web/constants"
	"github.com/darkkaiser/echo-gtm/internal/service/web/httputil"
	applog "github.com/darkkaiser/echo-gtm/pkg/log"
	"github.com/labstack/echo/v4"
)

// ValidateContentType 요청 본문의 Content-Type을 검증하는 미들웨어를 반환합니다.
//
// 본문이 없는 요청(GET, HEAD 등 ContentLength가 0인 요청)은 검사하지 않습니다.
// 미디어 타입만 비교하며 charset 같은 파라미터와 대소문자는 무시합니다.
//
// Parameters:
//   - expectedContentType: 허용할 Content-Type (예: "application/json")
//
// Returns:
//   - 415 Unsupported Media Type: Content-Type이 없거나 일치하지 않는 경우
func ValidateContentType(expectedContentType string) echo.MiddlewareFunc {
	expected := strings.ToLower(expectedContentType)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.ContentLength == 0 {
				return next(c)
			}

			contentType := req.Header.Get(echo.HeaderContentType)
			mediaType, _, err := mime.ParseMediaType(contentType)
			if err != nil || mediaType != expected {
				applog.WithComponentAndFields(constants.ComponentMiddlewareContentType, applog.Fields{
					"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
					"method":     req.Method,
					"path":       req.URL.Path,
					"expected":   expectedContentType,
					"actual":     contentType,
					"remote_ip":  c.RealIP(),
				}).Warn(constants.LogMsgUnsupportedContentType)

				return httputil.NewUnsupportedMediaTypeError(constants.ErrMsgUnsupportedMediaType)
			}

			return next(c)
		}
	}
}
